package extract

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"dao-activity-lab/internal/domain"
)

// DAOhaus categories.
const (
	DAOhausMoloches      = "moloches"
	DAOhausMembers       = "members"
	DAOhausRageQuits     = "rageQuits"
	DAOhausTokenBalances = "tokenBalances"
)

// ExtractDAOhaus builds signals from DAOhaus (Moloch) exports. Proposals,
// votes and rage quits are activity; members and treasury balances are
// secondary metrics.
func ExtractDAOhaus(tables map[string]*domain.Table) ([]domain.OrganizationSignal, error) {
	if err := checkMandatory(domain.PlatformDAOhaus, tables, DAOhausMoloches, CategoryProposals); err != nil {
		return nil, err
	}

	moloches := newReader(tables[DAOhausMoloches])
	if err := moloches.require("molochAddress"); err != nil {
		return nil, err
	}
	createdColumn := "createdAt"
	if !moloches.table.HasColumn(createdColumn) {
		createdColumn = "summoningTime"
		if err := moloches.require(createdColumn); err != nil {
			return nil, err
		}
	}

	idx := newOrgIndex(moloches.rows())
	for i := 0; i < moloches.rows(); i++ {
		id, err := moloches.id(i, "molochAddress")
		if err != nil {
			return nil, err
		}
		created, ok, err := moloches.time(i, createdColumn)
		if err != nil {
			return nil, err
		}
		if !ok && createdColumn == "createdAt" && moloches.table.HasColumn("summoningTime") {
			if created, _, err = moloches.time(i, "summoningTime"); err != nil {
				return nil, err
			}
		}
		idx.add(domain.OrganizationSignal{
			ID:        id,
			Name:      moloches.str(i, "name"),
			CreatedAt: created,
		})
	}

	if err := idx.addEvents(tables[CategoryProposals], "molochAddress", "createdAt", domain.CounterProposals); err != nil {
		return nil, err
	}
	if err := idx.addEvents(tables[CategoryVotes], "molochAddress", "createdAt", domain.CounterVotes); err != nil {
		return nil, err
	}
	if err := idx.addEvents(tables[DAOhausRageQuits], "molochAddress", "createdAt", domain.CounterRageQuits); err != nil {
		return nil, err
	}
	if err := countMembers(idx, tables[DAOhausMembers]); err != nil {
		return nil, err
	}
	if err := addTreasuries(idx, tables[DAOhausTokenBalances]); err != nil {
		return nil, err
	}

	return idx.signals, nil
}

// countMembers counts member rows that still exist (ragequit members carry
// exists=false).
func countMembers(idx *orgIndex, t *domain.Table) error {
	if t == nil {
		return nil
	}
	r := newReader(t)
	if err := r.require("molochAddress"); err != nil {
		return err
	}
	for i := 0; i < r.rows(); i++ {
		s := idx.get(r.address(i, "molochAddress"))
		if s == nil || isFalse(r.str(i, "exists")) {
			continue
		}
		s.Incr(domain.CounterMembers, 1)
	}
	return nil
}

// addTreasuries sums guild bank balances per moloch. USD values are passed
// through as exported.
func addTreasuries(idx *orgIndex, t *domain.Table) error {
	if t == nil {
		return nil
	}
	r := newReader(t)
	if err := r.require("molochAddress", "balanceFloat"); err != nil {
		return err
	}
	for i := 0; i < r.rows(); i++ {
		s := idx.get(r.address(i, "molochAddress"))
		if s == nil {
			continue
		}
		balance, err := parseDecimal(r, i, "balanceFloat")
		if err != nil {
			return err
		}
		usd, err := parseDecimal(r, i, "usdValue")
		if err != nil {
			return err
		}
		if s.Treasury == nil {
			s.Treasury = &domain.Treasury{Balance: decimal.Zero, USDValue: decimal.Zero}
		}
		s.Treasury.Balance = s.Treasury.Balance.Add(balance)
		s.Treasury.USDValue = s.Treasury.USDValue.Add(usd)
		s.Treasury.Tokens++
	}
	return nil
}

// parseDecimal reads an optional decimal cell; empty and NaN read as zero.
func parseDecimal(r tableReader, row int, column string) (decimal.Decimal, error) {
	raw := r.str(row, column)
	if raw == "" || strings.EqualFold(raw, "nan") {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, &domain.MalformedDataError{
			Category: r.table.Category,
			Row:      row + 1,
			Column:   column,
			Value:    raw,
			Err:      fmt.Errorf("not a decimal: %w", err),
		}
	}
	return d, nil
}
