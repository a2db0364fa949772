// Package fixtures provides a small demo dataset covering every activity
// category on every platform. Timestamps are relative to a reference instant
// so classifications are stable for any clock.
package fixtures

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"dao-activity-lab/internal/domain"
	"dao-activity-lab/internal/storage"
)

// LoadFixtures populates store with the demo dataset relative to now.
func LoadFixtures(ctx context.Context, store storage.RecordStore, now time.Time) error {
	for _, p := range domain.Platforms {
		for _, t := range Tables(p, now) {
			if err := store.InsertTable(ctx, p, t); err != nil {
				return fmt.Errorf("load %s %s fixture: %w", p, t.Category, err)
			}
		}
	}
	return nil
}

// Tables returns the demo tables of platform p.
func Tables(p domain.Platform, now time.Time) []*domain.Table {
	ago := func(days int) string {
		return strconv.FormatInt(now.Add(-time.Duration(days)*24*time.Hour).Unix(), 10)
	}

	switch p {
	case domain.PlatformAragon:
		return aragonTables(ago)
	case domain.PlatformDAOhaus:
		return daohausTables(ago)
	case domain.PlatformDAOstack:
		return daostackTables(ago)
	default:
		return nil
	}
}

// Expected category per fixture organization, keyed by address.
var Expected = map[string]domain.Category{
	"0xa1": domain.CategoryHighlyActive,
	"0xa2": domain.CategoryModeratelyActive,
	"0xa3": domain.CategoryMinimallyActive,
	"0xa4": domain.CategoryPotentialTest,
	"0xa5": domain.CategoryNoActivity,

	"0xb1": domain.CategoryHighlyActive,
	"0xb2": domain.CategoryModeratelyActive,
	"0xb3": domain.CategoryPotentialTest,
	"0xb4": domain.CategoryNoActivity,
	"0xb5": domain.CategoryMinimallyActive,

	"0xc1": domain.CategoryHighlyActive,
	"0xc2": domain.CategoryModeratelyActive,
	"0xc3": domain.CategoryNoActivity,
	"0xc4": domain.CategoryMinimallyActive,
}

func aragonTables(ago func(int) string) []*domain.Table {
	orgs := &domain.Table{
		Category: "organizations",
		Columns:  []string{"orgAddress", "name", "createdAt", "recoveryVault"},
		Rows: [][]string{
			{"0xA1", "Alpha DAO", ago(400), "0xvault1"},
			{"0xa2", "Beta Collective", ago(300), ""},
			{"0xa3", "Gamma Fund", ago(500), ""},
			{"0xa4", "", ago(3), ""},
			{"0xa5", "Dormant Org", ago(800), ""},
		},
	}

	txs := &domain.Table{Category: "transactions", Columns: []string{"orgAddress", "date", "to"}}
	for i := 0; i < 10; i++ {
		txs.Rows = append(txs.Rows, []string{"0xa1", ago(10 + i*5), "0xapp"})
	}
	for i := 0; i < 3; i++ {
		txs.Rows = append(txs.Rows, []string{"0xa2", ago(20 + i*30), "0xapp"})
	}
	for i := 0; i < 6; i++ {
		txs.Rows = append(txs.Rows, []string{"0xa3", ago(200 + i*10), "0xapp"})
	}
	txs.Rows = append(txs.Rows, []string{"0xa4", ago(1), "0xapp"})

	return []*domain.Table{
		orgs,
		txs,
		{
			Category: "votes",
			Columns:  []string{"orgAddress", "appAddress", "creator"},
			Rows: [][]string{
				{"0xa1", "0xvoting", "0x1"},
				{"0xa1", "0xvoting", "0x2"},
				{"0xa2", "0xvoting", "0x3"},
			},
		},
		{
			Category: "casts",
			Columns:  []string{"orgAddress", "voter", "supports"},
			Rows: [][]string{
				{"0xa1", "0x1", "true"},
				{"0xa1", "0x2", "false"},
			},
		},
		{
			Category: "tokenHolders",
			Columns:  []string{"organizationAddress", "address", "balance"},
			Rows: [][]string{
				{"0xa1", "0x1", "100"},
				{"0xa1", "0x2", "50"},
				{"0xa1", "0x1", "100"},
				{"0xa3", "0x9", "1"},
			},
		},
		{
			Category: "apps",
			Columns:  []string{"organizationId", "appId", "repoName"},
			Rows: [][]string{
				{"0xa1", "0xvoting", "voting"},
				{"0xa1", "0xfinance", "finance"},
				{"0xa2", "0xvoting", "voting"},
			},
		},
	}
}

func daohausTables(ago func(int) string) []*domain.Table {
	proposals := &domain.Table{Category: "proposals", Columns: []string{"molochAddress", "proposalId", "createdAt"}}
	for i := 0; i < 6; i++ {
		proposals.Rows = append(proposals.Rows, []string{"0xb1", strconv.Itoa(i), ago(5 + i*7)})
	}
	proposals.Rows = append(proposals.Rows,
		[]string{"0xb2", "0", ago(60)},
		[]string{"0xb5", "0", ago(170)},
		[]string{"0xb5", "1", ago(150)},
	)

	return []*domain.Table{
		{
			Category: "moloches",
			Columns:  []string{"molochAddress", "name", "createdAt", "summoningTime", "version"},
			Rows: [][]string{
				{"0xb1", "Raid Guild", ago(700), ago(700), "2"},
				{"0xb2", "Meta Cartel", "", ago(200), "2"},
				{"0xb3", "", ago(2), ago(2), "2.1"},
				{"0xb4", "Old Guild", ago(900), ago(900), "1"},
				{"0xb5", "Venture Moloch", ago(600), ago(600), "2"},
			},
		},
		proposals,
		{
			Category: "votes",
			Columns:  []string{"molochAddress", "memberAddress", "createdAt", "uintVote"},
			Rows: [][]string{
				{"0xb1", "0x1", ago(6), "1"},
				{"0xb1", "0x2", ago(6), "2"},
			},
		},
		{
			Category: "members",
			Columns:  []string{"molochAddress", "memberAddress", "shares", "exists"},
			Rows: [][]string{
				{"0xb1", "0x1", "100", "True"},
				{"0xb1", "0x2", "50", "True"},
				{"0xb1", "0x3", "0", "False"},
				{"0xb2", "0x4", "10", "True"},
			},
		},
		{
			Category: "rageQuits",
			Columns:  []string{"molochAddress", "memberAddress", "createdAt", "shares"},
			Rows: [][]string{
				{"0xb5", "0x7", ago(120), "10"},
			},
		},
		{
			Category: "tokenBalances",
			Columns:  []string{"molochAddress", "tokenSymbol", "balanceFloat", "usdValue"},
			Rows: [][]string{
				{"0xb1", "WETH", "12.5", "25000.00"},
				{"0xb1", "DAI", "1000", "1000.00"},
				{"0xb2", "WETH", "0.5", ""},
			},
		},
	}
}

func daostackTables(ago func(int) string) []*domain.Table {
	proposals := &domain.Table{Category: "proposals", Columns: []string{"dao", "proposalId", "createdAt", "stage"}}
	for i := 0; i < 4; i++ {
		proposals.Rows = append(proposals.Rows, []string{"0xc1", strconv.Itoa(i), ago(3 + i*20), "Executed"})
	}

	votes := &domain.Table{Category: "votes", Columns: []string{"dao", "voter", "createdAt", "outcome"}}
	for i := 0; i < 6; i++ {
		votes.Rows = append(votes.Rows, []string{"0xc1", "0x" + strconv.Itoa(i), ago(4 + i), "Pass"})
	}
	votes.Rows = append(votes.Rows, []string{"0xc2", "0x9", ago(45), "Fail"})

	return []*domain.Table{
		{
			Category: "daos",
			Columns:  []string{"dao", "name", "nativeToken"},
			Rows: [][]string{
				{"0xc1", "Genesis Alpha", "0xgen"},
				{"0xc2", "dxDAO", "0xdxd"},
				{"0xc3", "Silent DAO", ""},
				{"0xc4", "Staked DAO", ""},
			},
		},
		proposals,
		votes,
		{
			Category: "stakes",
			Columns:  []string{"dao", "staker", "createdAt", "amount"},
			Rows: [][]string{
				{"0xc4", "0x5", ago(365), "100"},
			},
		},
		{
			Category: "reputationHolders",
			Columns:  []string{"dao", "address", "balance", "createdAt"},
			Rows: [][]string{
				{"0xc1", "0x1", "1000", ago(1000)},
				{"0xc2", "0x2", "500", ago(600)},
				{"0xc2", "0x3", "500", ""},
			},
		},
	}
}
