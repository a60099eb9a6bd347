package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/jtejido/afisnet"
	"github.com/jtejido/afisnet/auth"
	"github.com/jtejido/afisnet/config"
)

type commandContext struct {
	configFlag   string
	userFlag     string
	passwordFlag string

	svc *afisnet.Service
}

// service loads configuration, opens the catalog and, when the configuration requires
// it, checks the operator's credentials. The service is opened once per invocation.
func (c *commandContext) service() (*afisnet.Service, error) {
	if c.svc != nil {
		return c.svc, nil
	}
	if err := config.LoadConfig(c.configFlag); err != nil {
		return nil, err
	}
	svc, err := afisnet.Open(config.Config)
	if err != nil {
		return nil, err
	}
	if config.Config.Auth.Required {
		if err := c.login(svc); err != nil {
			_ = svc.Close()
			return nil, err
		}
	}
	c.svc = svc
	return svc, nil
}

func (c *commandContext) login(svc *afisnet.Service) error {
	user := firstNonEmpty(c.userFlag, os.Getenv("AFIS_USER"))
	password := firstNonEmpty(c.passwordFlag, os.Getenv("AFIS_PASSWORD"))
	if user == "" {
		return errors.New("authentication required: pass --user and --password")
	}
	creds, err := auth.Load(config.Config.Auth.Credentials)
	if err != nil {
		return err
	}
	return svc.Login(user, func() error { return creds.Verify(user, password) })
}

func (c *commandContext) close() {
	if c.svc != nil {
		_ = c.svc.Close()
		c.svc = nil
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid record id %q", arg)
	}
	return id, nil
}
