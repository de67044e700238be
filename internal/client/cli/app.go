package cli

import (
	"bufio"
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/itemkeeper/internal/client/api"
	"github.com/dmitrijs2005/itemkeeper/internal/client/config"
)

type App struct {
	config    *config.Config
	apiClient *api.Client
	userEmail string
	reader    *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	apiClient := api.NewClient(c)
	return &App{config: c, apiClient: apiClient, reader: bufio.NewReader(os.Stdin)}, nil
}

func (a *App) isLoggedIn() bool {
	return a.apiClient.IsLoggedIn()
}

func (a *App) getStatus() string {
	if a.userEmail != "" {
		return "(" + a.userEmail + ")"
	}
	return ""
}

func (a *App) Run(ctx context.Context) {
	log.Println("Welcome to ItemKeeper CLI (type 'help' for commands)")

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
