package handlers

import (
	"github.com/ellavondegurechaff/goaura/goaura"
	"github.com/ellavondegurechaff/goaura/goaura/ai"
	"github.com/ellavondegurechaff/goaura/goaura/database"
	"github.com/ellavondegurechaff/goaura/goaura/economy"
)

// App bundles the service dependencies handed to every handler.
type App struct {
	Config     *goaura.Config
	DB         *database.DB
	CheckIns   *economy.CheckInService
	Adventures *economy.AdventureService
	Dialogues  *economy.DialogueService
	Balances   *economy.BalanceService
	Quota      *ai.QuotaService
	Version    string
	Commit     string
}
