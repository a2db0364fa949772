package extract

import "dao-activity-lab/internal/domain"

// Aragon categories.
const (
	AragonOrganizations = "organizations"
	AragonTransactions  = "transactions"
	AragonCasts         = "casts"
	AragonTokenHolders  = "tokenHolders"
	AragonApps          = "apps"
)

// ExtractAragon builds signals from Aragon exports. Activity is transaction
// volume; votes, casts, token holders and apps are secondary counts.
func ExtractAragon(tables map[string]*domain.Table) ([]domain.OrganizationSignal, error) {
	if err := checkMandatory(domain.PlatformAragon, tables, AragonOrganizations, AragonTransactions); err != nil {
		return nil, err
	}

	orgs := newReader(tables[AragonOrganizations])
	if err := orgs.require("orgAddress", "createdAt"); err != nil {
		return nil, err
	}

	idx := newOrgIndex(orgs.rows())
	for i := 0; i < orgs.rows(); i++ {
		id, err := orgs.id(i, "orgAddress")
		if err != nil {
			return nil, err
		}
		created, _, err := orgs.time(i, "createdAt")
		if err != nil {
			return nil, err
		}
		idx.add(domain.OrganizationSignal{
			ID:        id,
			Name:      orgs.str(i, "name"),
			CreatedAt: created,
		})
	}

	if err := idx.addEvents(tables[AragonTransactions], "orgAddress", "date", domain.CounterTransactions); err != nil {
		return nil, err
	}

	// Optional secondary counts.
	if err := idx.countRows(tables[CategoryVotes], "orgAddress", domain.CounterVotes); err != nil {
		return nil, err
	}
	if err := idx.countRows(tables[AragonCasts], "orgAddress", domain.CounterCasts); err != nil {
		return nil, err
	}
	if err := idx.countDistinct(tables[AragonTokenHolders], "organizationAddress", "address", domain.CounterTokenHolders); err != nil {
		return nil, err
	}
	if err := idx.countRows(tables[AragonApps], "organizationId", domain.CounterApps); err != nil {
		return nil, err
	}

	return idx.signals, nil
}
