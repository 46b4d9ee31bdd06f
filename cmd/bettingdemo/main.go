package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pterm/pterm"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/cardroom/betting"
	"github.com/cardroom/betting/hand_evaluator"
	"github.com/cardroom/betting/pot_manager"
	"github.com/cardroom/betting/snapshot"
	"github.com/cardroom/betting/timer_service"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// runs one scripted no-limit hand between three players and renders each
// street with pterm.
func main() {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	options := betting.NewDefaultEngineOptions()
	options.TableID = getEnv("TABLE_ID", "demo-table")
	options.SmallBlind = 5
	options.BigBlind = 10
	options.ReadyTimeoutSeconds = 0

	players := []*betting.PokerPlayer{
		betting.NewPokerPlayer("Alice", 0, 1000),
		betting.NewPokerPlayer("Bob", 1, 1000),
		betting.NewPokerPlayer("Carol", 2, 600),
	}

	engine, err := betting.NewBettingEngine(options, players, betting.WithLogger(logger))
	if err != nil {
		pterm.Error.Printfln("engine setup failed: %v", err)
		os.Exit(1)
	}
	engine.OnActionTaken(func(ev betting.ActionTakenEvent) {
		if ev.Result.Success {
			pterm.Info.Printfln("%-6s %-6s %5d  (pot %d)",
				playerName(players, ev.Result.PlayerID), ev.Result.Action, ev.Result.Amount, ev.Result.PotTotal)
		}
	})

	if err := engine.OpenHand(); err != nil {
		pterm.Error.Printfln("open hand failed: %v", err)
		os.Exit(1)
	}
	renderTable(engine, players)

	// Preflop: Alice opens the action with a raise, the blinds call.
	engine.ProcessAction(players[1].ID, betting.Action_Call, 0) // out of turn, rejected
	engine.ProcessAction(players[0].ID, betting.Action_Raise, 30)
	engine.ProcessAction(players[1].ID, betting.Action_Call, 0)
	engine.ProcessAction(players[2].ID, betting.Action_Call, 0)

	// Flop: Alice leads, Bob raises, Alice calls, Carol folds.
	engine.ResetPlayerBets()
	if err := engine.StartRound(betting.Street_Flop, 0, betting.UnsetValue); err != nil {
		pterm.Error.Printfln("flop failed: %v", err)
		os.Exit(1)
	}
	engine.ProcessAction(players[1].ID, betting.Action_Bet, 40)
	engine.ProcessAction(players[2].ID, betting.Action_Fold, 0)
	engine.ProcessAction(players[0].ID, betting.Action_Call, 0)

	// Turn checks through.
	engine.ResetPlayerBets()
	if err := engine.StartRound(betting.Street_Turn, 0, betting.UnsetValue); err != nil {
		pterm.Error.Printfln("turn failed: %v", err)
		os.Exit(1)
	}
	engine.ProcessAction(players[1].ID, betting.Action_Check, 0)
	engine.ProcessAction(players[0].ID, betting.Action_Check, 0)

	// River: Bob checks, Alice lets her clock run out and the timeout
	// defaults to a check.
	engine.ResetPlayerBets()
	if err := engine.StartRound(betting.Street_River, 0, betting.UnsetValue); err != nil {
		pterm.Error.Printfln("river failed: %v", err)
		os.Exit(1)
	}
	engine.ProcessAction(players[1].ID, betting.Action_Check, 0)

	timers := timer_service.NewActionTimerService(nil)
	timers.OnTimerExpired(func(ev timer_service.TimerEvent) {
		pterm.Warning.Printfln("%s timed out", playerName(players, ev.PlayerID))
	})
	expired := make(chan string, 1)
	generation := engine.Generation()
	timers.StartTimerWithDuration(players[0].ID, 1, func(playerID string) {
		expired <- playerID
	})
	engine.ProcessTimeoutAction(<-expired, generation)
	timers.Dispose()

	renderTable(engine, players)

	// Showdown with fixed cards.
	board, _ := hand_evaluator.ParseCards("Ah", "Kd", "7s", "2c", "9h")
	holdings := map[string]hand_evaluator.Holding{
		players[0].ID: mustHolding("As", "Ts"),
		players[1].ID: mustHolding("Kc", "Qh"),
	}
	evaluator, err := hand_evaluator.NewEvaluator(holdings, board)
	if err != nil {
		pterm.Error.Printfln("evaluator setup failed: %v", err)
		os.Exit(1)
	}

	awards, err := engine.SettleHand(evaluator.HighHandSelector())
	if err != nil {
		pterm.Error.Printfln("settlement failed: %v", err)
		os.Exit(1)
	}
	renderShowdown(players, awards, evaluator)
	renderTable(engine, players)

	saveSnapshot(engine, logger)
}

func playerName(players []*betting.PokerPlayer, playerID string) string {
	for _, p := range players {
		if p.ID == playerID {
			return p.Name
		}
	}
	return playerID
}

func mustHolding(a, b string) hand_evaluator.Holding {
	cards, err := hand_evaluator.ParseCards(a, b)
	if err != nil {
		panic(err)
	}
	return hand_evaluator.Holding{cards[0], cards[1]}
}

func renderTable(engine betting.BettingEngine, players []*betting.PokerPlayer) {
	pbox := pterm.DefaultBox.WithLeftPadding(4).WithRightPadding(4).WithTopPadding(1).WithBottomPadding(1)
	panels := make([]pterm.Panel, 0, len(players))
	for _, p := range players {
		status := pterm.LightGreen("Active")
		if p.HasFolded() {
			status = pterm.LightRed("Folded")
		} else if p.IsAllIn() {
			status = pterm.LightYellow("All-in")
		}
		info := pterm.Sprintf("%s\nStack: %d\nStreet bet: %d", status, p.Chips(), p.CurrentBet())
		panels = append(panels, pterm.Panel{Data: pbox.WithTitle(p.Name).WithTitleTopLeft().Sprint(info)})
	}

	pot := pterm.Panel{Data: pbox.WithTitle(pterm.LightYellow("|POT|")).WithTitleTopCenter().Sprintf(
		"Total: %d\nHand: #%d", engine.PotManager().Total(), engine.HandNumber())}

	pterm.DefaultPanel.WithPanels([][]pterm.Panel{panels, {pot}}).Render()
}

func renderShowdown(players []*betting.PokerPlayer, awards []pot_manager.PotAward, evaluator *hand_evaluator.Evaluator) {
	pbox := pterm.DefaultBox.WithLeftPadding(4).WithRightPadding(4).WithTopPadding(1).WithBottomPadding(1)
	info := ""
	for _, award := range awards {
		for playerID, amount := range award.Payouts {
			line := pterm.Sprintf("%s won %d", pterm.LightCyan(playerName(players, playerID)), amount)
			if hand, err := evaluator.Describe(playerID); err == nil {
				line += " with " + hand
			}
			info += line + "\n"
		}
	}
	pterm.DefaultPanel.WithPanels([][]pterm.Panel{{
		{Data: pbox.WithTitle(pterm.LightGreen("|SHOWDOWN|")).WithTitleTopCenter().Sprint(info)},
	}}).Render()
}

func saveSnapshot(engine betting.BettingEngine, logger *logrus.Logger) {
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		return
	}

	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer rdb.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	store := snapshot.NewRedisStore(rdb, 24*time.Hour)
	if err := store.Save(ctx, engine.Snapshot()); err != nil {
		logger.WithError(err).Warn("snapshot save failed")
		return
	}
	fmt.Println("snapshot saved to redis")
}
