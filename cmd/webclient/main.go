package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/leonardomorales-oss/auth0-fullstack-go/internal/client"
	"github.com/leonardomorales-oss/auth0-fullstack-go/pkg/config"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadClient()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	command := "show"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	session, err := client.LoadSession(cfg.TokenCache)
	if err != nil {
		slog.Error("failed to load session", "error", err)
		os.Exit(1)
	}

	switch command {
	case "login":
		if err := runLogin(session, cfg); err != nil {
			slog.Error("login failed", "error", err)
			os.Exit(1)
		}
	case "logout":
		if err := runLogout(session, cfg); err != nil {
			slog.Error("logout failed", "error", err)
			os.Exit(1)
		}
	case "show":
		runShow(session, cfg)
	default:
		fmt.Fprintf(os.Stderr, "usage: %s [login|logout|show]\n", os.Args[0])
		os.Exit(2)
	}
}

// runLogin drives the interactive hosted login and caches the session.
func runLogin(session *client.Session, cfg *config.ClientConfig) error {
	session.BeginLogin()

	token, err := client.Login(context.Background(), cfg, os.Stdout)
	if err != nil {
		return err
	}
	if err := session.Complete(token); err != nil {
		return err
	}

	fmt.Printf("Signed in as %s\n", token.Identity.Email)
	return nil
}

// runLogout clears the local session and prints the provider logout URL so
// the hosted session can be ended too.
func runLogout(session *client.Session, cfg *config.ClientConfig) error {
	if err := session.SignOut(); err != nil {
		return err
	}

	fmt.Println("Signed out locally. To end the provider session, open:")
	fmt.Println("  " + client.LogoutURL(cfg.Auth0Domain, cfg.Auth0ClientID, cfg.APIBaseURL))
	return nil
}

// runShow renders the profile view: identity first, then the two backend
// sections as their independent fetches resolve.
func runShow(session *client.Session, cfg *config.ClientConfig) {
	token := session.Token()
	if token == nil {
		fmt.Println("Not signed in. Run with 'login' to sign in.")
		return
	}

	client.RenderIdentity(os.Stdout, token.Identity)

	fetcher := client.NewFetcher(cfg.APIBaseURL, token.AccessToken)
	profile, userData := fetcher.FetchAll(context.Background())

	client.RenderResult(os.Stdout, "Backend profile", profile)
	client.RenderResult(os.Stdout, "Application data", userData)
}
