package extract

import "dao-activity-lab/internal/domain"

// DAOstack categories.
const (
	DAOstackDAOs              = "daos"
	DAOstackStakes            = "stakes"
	DAOstackReputationHolders = "reputationHolders"
)

// ExtractDAOstack builds signals from DAOstack exports. Proposals, votes
// and stakes are activity. The daos table has no creation column, so the
// creation instant is the earliest timestamp attributable to the DAO.
func ExtractDAOstack(tables map[string]*domain.Table) ([]domain.OrganizationSignal, error) {
	if err := checkMandatory(domain.PlatformDAOstack, tables, DAOstackDAOs, CategoryProposals); err != nil {
		return nil, err
	}

	daos := newReader(tables[DAOstackDAOs])
	if err := daos.require("dao"); err != nil {
		return nil, err
	}

	idx := newOrgIndex(daos.rows())
	for i := 0; i < daos.rows(); i++ {
		id, err := daos.id(i, "dao")
		if err != nil {
			return nil, err
		}
		idx.add(domain.OrganizationSignal{ID: id, Name: daos.str(i, "name")})
	}

	if err := idx.addEvents(tables[CategoryProposals], "dao", "createdAt", domain.CounterProposals); err != nil {
		return nil, err
	}
	if err := idx.addEvents(tables[CategoryVotes], "dao", "createdAt", domain.CounterVotes); err != nil {
		return nil, err
	}
	if err := idx.addEvents(tables[DAOstackStakes], "dao", "createdAt", domain.CounterStakes); err != nil {
		return nil, err
	}
	if err := addReputationHolders(idx, tables[DAOstackReputationHolders]); err != nil {
		return nil, err
	}

	for i := range idx.signals {
		s := &idx.signals[i]
		for _, e := range s.Events {
			if s.CreatedAt.IsZero() || e.Time.Before(s.CreatedAt) {
				s.CreatedAt = e.Time
			}
		}
	}

	return idx.signals, nil
}

// addReputationHolders counts holders per DAO and lets their first-holding
// timestamps bound the creation instant. Holdings are not activity events.
func addReputationHolders(idx *orgIndex, t *domain.Table) error {
	if t == nil {
		return nil
	}
	r := newReader(t)
	if err := r.require("dao"); err != nil {
		return err
	}
	hasCreated := t.HasColumn("createdAt")
	for i := 0; i < r.rows(); i++ {
		s := idx.get(r.address(i, "dao"))
		if s == nil {
			continue
		}
		s.Incr(domain.CounterReputationHolders, 1)
		if !hasCreated {
			continue
		}
		at, ok, err := r.time(i, "createdAt")
		if err != nil {
			return err
		}
		if ok && (s.CreatedAt.IsZero() || at.Before(s.CreatedAt)) {
			s.CreatedAt = at
		}
	}
	return nil
}
