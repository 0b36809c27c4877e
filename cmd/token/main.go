// Command token mints a development access token signed with JWT_SECRET, for
// calling the write routes when AUTH_REQUIRED is set.
package main

import (
	"fmt"
	"os"

	"github.com/gogotex/gogotex/backend/blog-service/internal/config"
	"github.com/gogotex/gogotex/backend/blog-service/internal/tokens"
	"github.com/gogotex/gogotex/backend/blog-service/pkg/logger"
	"github.com/urfave/cli/v2"
)

func main() {
	// stdout carries the token only
	logger.SetOutput(os.Stderr)

	app := &cli.App{
		Name:  "blog-token",
		Usage: "mint a bearer token for the blog service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "subject",
				Aliases: []string{"s"},
				Value:   "dev",
				Usage:   "token subject (sub claim)",
			},
			&cli.DurationFlag{
				Name:    "ttl",
				Aliases: []string{"t"},
				Usage:   "token lifetime (defaults to JWT_ACCESS_TOKEN_TTL)",
			},
		},
		Action: func(ctx *cli.Context) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			ttl := ctx.Duration("ttl")
			if ttl <= 0 {
				ttl = cfg.JWT.AccessTokenTTL
			}
			if cfg.JWT.UsingDefaultSecret() {
				logger.Warn("signing with the development secret")
			}
			tok, err := tokens.GenerateAccessToken(cfg, ctx.String("subject"), ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(ctx.App.Writer, tok)
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}
