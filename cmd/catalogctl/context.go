package main

import (
	"fmt"

	"github.com/stagehire/catalog-backend/internal/app"
	"github.com/stagehire/catalog-backend/internal/data/db"
	"github.com/stagehire/catalog-backend/internal/data/repos"
	"github.com/stagehire/catalog-backend/internal/platform/logger"
	"github.com/stagehire/catalog-backend/internal/services"
)

// commandContext opens the database lazily so offline commands never need
// one.
type commandContext struct {
	driverFlag     string
	sqlitePathFlag string
	quiet          bool

	log       *logger.Logger
	dbService *db.Service
	products  services.ProductService
}

func newCommandContext() *commandContext {
	return &commandContext{}
}

func (c *commandContext) dbConfig() db.Config {
	cfg := app.LoadConfig().DB
	if c.driverFlag != "" {
		cfg.Driver = c.driverFlag
	}
	if c.sqlitePathFlag != "" {
		cfg.SQLitePath = c.sqlitePathFlag
	}
	return cfg
}

func (c *commandContext) logger() (*logger.Logger, error) {
	if c.log != nil {
		return c.log, nil
	}
	if c.quiet {
		c.log = logger.NewNop()
		return c.log, nil
	}
	log, err := logger.New("production")
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	c.log = log
	return log, nil
}

func (c *commandContext) database() (*db.Service, error) {
	if c.dbService != nil {
		return c.dbService, nil
	}
	log, err := c.logger()
	if err != nil {
		return nil, err
	}
	svc, err := db.NewService(log, c.dbConfig())
	if err != nil {
		return nil, err
	}
	c.dbService = svc
	return svc, nil
}

func (c *commandContext) productService() (services.ProductService, error) {
	if c.products != nil {
		return c.products, nil
	}
	dbs, err := c.database()
	if err != nil {
		return nil, err
	}
	if err := dbs.AutoMigrateAll(); err != nil {
		return nil, err
	}
	theDB := dbs.DB()
	c.products = services.NewProductService(theDB, c.log, repos.NewProductRepo(theDB, c.log), nil)
	return c.products, nil
}

func (c *commandContext) close() error {
	var err error
	if c.dbService != nil {
		err = c.dbService.Close()
		c.dbService = nil
		c.products = nil
	}
	if c.log != nil {
		c.log.Sync()
	}
	return err
}
