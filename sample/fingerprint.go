package main

import (
	"bytes"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jtejido/afisnet"
	"github.com/jtejido/afisnet/config"
	"github.com/jtejido/afisnet/matching"
	"github.com/jtejido/afisnet/plot"
)

type handlers struct {
	svc *afisnet.Service
}

func (h *handlers) identify(c *fiber.Ctx) error {
	start := time.Now()

	var req IdentifyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	if req.Algorithm == "" {
		req.Algorithm = matching.GraphBased.String()
	}
	alg, err := matching.ParseAlgorithm(req.Algorithm)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	sample, err := toMinutiae(req.Points)
	if err != nil {
		return httpError(err)
	}

	res, ok, err := h.svc.Identify(sample, alg)
	if err != nil {
		return httpError(err)
	}

	response := IdentifyResponse{
		Match:     ok,
		Algorithm: alg.String(),
		Points:    len(sample),
		Elapsed:   time.Since(start).String(),
	}
	if ok {
		response.Result = &res
		response.Confidence = fmt.Sprintf("%.2f%%", res.Confidence)
		response.RidgeCounts = ridgeCounts(sample)
		response.Message = fmt.Sprintf("Match: record #%d (%s)", res.RecordID, res.Name)
	} else {
		response.Message = "No matching fingerprint found in catalog"
	}
	log.Println("Identify:", response.Message)
	return c.JSON(response)
}

func (h *handlers) listRecords(c *fiber.Ctx) error {
	records, err := h.svc.Records()
	if err != nil {
		return err
	}
	out := make([]RecordSummary, 0, len(records))
	for _, r := range records {
		out = append(out, summarize(r))
	}
	return c.JSON(out)
}

func (h *handlers) addRecord(c *fiber.Ctx) error {
	var req RecordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	r, err := toRecord(req)
	if err != nil {
		return httpError(err)
	}
	if err := h.svc.AddRecord(r); err != nil {
		return httpError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(summarize(r))
}

func (h *handlers) getRecord(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	r, err := h.svc.Record(id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(r)
}

func (h *handlers) network(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	t, err := h.svc.Network(id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(t)
}

func (h *handlers) adjacency(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	adj, err := h.svc.Adjacency(id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(adj)
}

func (h *handlers) plot(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	r, err := h.svc.Record(id)
	if err != nil {
		return httpError(err)
	}
	img, err := plot.Render(r.Points, plot.OptionsFrom(config.Config.Plot))
	if err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}
	var buf bytes.Buffer
	if err := plot.Encode(&buf, img); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "image/x-portable-graymap")
	return c.Send(buf.Bytes())
}

func (h *handlers) history(c *fiber.Ctx) error {
	lines, err := h.svc.History()
	if err != nil {
		return err
	}
	if lines == nil {
		lines = []string{}
	}
	return c.JSON(fiber.Map{"history": lines})
}

func (h *handlers) health(c *fiber.Ctx) error {
	stats, err := h.svc.Stats()
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"status": "ok",
		"time":   time.Now(),
		"stats":  stats,
	})
}
