package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/vestlock/vestlock/internal/store"
	"github.com/vestlock/vestlock/pkg/db"
	"github.com/vestlock/vestlock/pkg/db/pebble"
	"github.com/vestlock/vestlock/pkg/log"
	"github.com/vestlock/vestlock/pkg/serialization/codec"
)

// vestlock inspects a release-ledger store: it dumps the global state
// and every group schedule with its member count as JSON.

type groupDump struct {
	ID                 string `json:"id"`
	TotalAmount        string `json:"total_amount"`
	IsFixedAmount      bool   `json:"is_fixed_amount"`
	UnlockPercent      uint8  `json:"unlock_percent,omitempty"`
	PeriodUnlockAmount string `json:"period_unlock_amount,omitempty"`
	ReleasePeriod      uint64 `json:"release_period"`
	ReleaseTicks       uint64 `json:"release_ticks"`
	Members            uint64 `json:"members"`
}

type ledgerDump struct {
	Token               string      `json:"token"`
	Owner               string      `json:"owner"`
	ActivationTimestamp uint64      `json:"activation_timestamp"`
	SetupOpen           bool        `json:"setup_open"`
	TotalSupply         string      `json:"total_supply"`
	Groups              []groupDump `json:"groups"`
}

func main() {
	datadir := flag.String("datadir", "", "path to the ledger store")
	loglevel := flag.String("loglevel", "info", "log level (trace|debug|info|warn|error)")
	flag.Parse()

	level, err := log.ParseLogLevel(*loglevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level: %v\n", err)
		os.Exit(1)
	}
	log.Init(log.Options{LogLevel: level, Type: log.ConsoleLogger})

	if *datadir == "" {
		fmt.Fprintln(os.Stderr, "usage: vestlock -datadir <path>")
		os.Exit(1)
	}

	kv, err := pebble.NewKVStore(*datadir)
	if err != nil {
		log.Root.Fatal().Err(err).Str("datadir", *datadir).Msg("open store")
	}
	defer kv.Close()

	if err := dump(kv, os.Stdout); err != nil {
		log.Root.Fatal().Err(err).Msg("dump ledger")
	}
}

func dump(kv db.KVStore, out *os.File) error {
	states := store.NewStates(kv)
	schedules := store.NewSchedules(kv)
	memberships := store.NewMemberships(kv)

	state, err := states.Get()
	if err != nil {
		return err
	}

	result := ledgerDump{
		Token:               state.Token.String(),
		Owner:               state.Owner.String(),
		ActivationTimestamp: state.ActivationTimestamp,
		SetupOpen:           state.SetupOpen,
		TotalSupply:         state.TotalSupply.String(),
	}

	ids, err := schedules.GroupIDs()
	if err != nil {
		return err
	}
	for _, id := range ids {
		schedule, err := schedules.Get(id)
		if err != nil {
			return err
		}
		members, err := memberships.MemberCount(id)
		if err != nil {
			return err
		}
		group := groupDump{
			ID:            string(id),
			TotalAmount:   schedule.TotalAmount.String(),
			IsFixedAmount: schedule.IsFixedAmount,
			ReleasePeriod: schedule.ReleasePeriod,
			ReleaseTicks:  schedule.ReleaseTicks,
			Members:       members,
		}
		if schedule.IsFixedAmount {
			group.PeriodUnlockAmount = schedule.PeriodUnlockAmount.String()
		} else {
			group.UnlockPercent = schedule.UnlockPercent
		}
		result.Groups = append(result.Groups, group)
	}

	bytes, err := (&codec.JSONCodec{}).Marshal(result)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(bytes))
	return err
}
