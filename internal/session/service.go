package session

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/amrit/lexiq/internal/curriculum"
	"github.com/amrit/lexiq/internal/proficiency"
	"github.com/amrit/lexiq/internal/store"
	"github.com/amrit/lexiq/internal/tuning"
)

// Service ties the engine together: it initializes records at session
// start, answers activity-start tuning requests, and ingests graded
// results at activity end.
type Service struct {
	repo   store.ProficiencyRepo
	events store.EventRepo // may be nil; event logging is best-effort
	engine *tuning.Engine
	cfg    proficiency.Config

	// now is injectable for tests.
	now func() time.Time
}

// NewService creates a session service.
func NewService(repo store.ProficiencyRepo, events store.EventRepo, engine *tuning.Engine, cfg proficiency.Config) *Service {
	return &Service{
		repo:   repo,
		events: events,
		engine: engine,
		cfg:    cfg,
		now:    time.Now,
	}
}

// StartSession lazily creates the domain, module, and per-item records
// for a student's first contact with a module. Idempotent: repeat calls
// never reset existing evidence.
func (s *Service) StartSession(ctx context.Context, studentID string, mod *curriculum.Module) error {
	if studentID == "" {
		return &proficiency.ContractError{Op: "start session", Err: fmt.Errorf("empty student id")}
	}
	if mod == nil {
		return &proficiency.ContractError{Op: "start session", Err: fmt.Errorf("nil module")}
	}
	return s.repo.BulkInitialize(ctx, studentID, mod.ID, mod.Domain, mod.ItemIDs())
}

// StartActivity produces the tuning recommendation for one activity
// start. A student with no history gets the prior-derived defaults.
func (s *Service) StartActivity(ctx context.Context, studentID, moduleID, activityType string, optional bool) (tuning.Recommendation, error) {
	if studentID == "" || moduleID == "" {
		return tuning.Recommendation{}, &proficiency.ContractError{
			Op:  "start activity",
			Err: fmt.Errorf("student %q module %q", studentID, moduleID),
		}
	}
	_ = activityType // recorded by callers; the policy keys off optionality only

	moduleRec, err := s.repo.Get(ctx, studentID, proficiency.LevelModule, moduleID)
	if err != nil {
		return tuning.Recommendation{}, err
	}
	items, err := s.repo.ItemsUnderModule(ctx, studentID, moduleID)
	if err != nil {
		return tuning.Recommendation{}, err
	}
	return s.engine.Recommend(moduleRec, items, optional, s.now()), nil
}

// scopeUpdate stages one Beta update within a rollup batch.
type scopeUpdate struct {
	level proficiency.Level
	scope string
	ev    proficiency.Evidence
}

// CompleteActivity folds one activity attempt's graded results into the
// student's records. Each item outcome counts once toward its item
// record, and the batch totals count toward the owning module and
// domain records: three structurally identical Beta updates staged in
// one pass and committed atomically. Items absent from the curriculum
// are created on demand at the prior.
func (s *Service) CompleteActivity(ctx context.Context, studentID, moduleID, domain string, results []ItemResult) (*Summary, error) {
	if studentID == "" || moduleID == "" || domain == "" {
		return nil, &proficiency.ContractError{
			Op:  "complete activity",
			Err: fmt.Errorf("student %q module %q domain %q", studentID, moduleID, domain),
		}
	}
	if len(results) == 0 {
		return nil, &proficiency.ContractError{
			Op:  "complete activity",
			Err: fmt.Errorf("completed attempt carries no graded results"),
		}
	}

	// Tally per-item evidence and the batch totals.
	perItem := make(map[string]*proficiency.Evidence)
	var order []string
	var batch proficiency.Evidence
	for _, res := range results {
		if res.Item == "" {
			return nil, &proficiency.ContractError{
				Op:  "complete activity",
				Err: fmt.Errorf("result with empty item id"),
			}
		}
		ev, ok := perItem[res.Item]
		if !ok {
			ev = &proficiency.Evidence{}
			perItem[res.Item] = ev
			order = append(order, res.Item)
		}
		if res.Correct {
			ev.Correct++
			batch.Correct++
		} else {
			ev.Incorrect++
			batch.Incorrect++
		}
	}

	updates := make([]scopeUpdate, 0, len(order)+2)
	for _, itemID := range order {
		updates = append(updates, scopeUpdate{
			level: proficiency.LevelItem,
			scope: proficiency.ItemScopeKey(moduleID, itemID),
			ev:    *perItem[itemID],
		})
	}
	updates = append(updates,
		scopeUpdate{level: proficiency.LevelModule, scope: moduleID, ev: batch},
		scopeUpdate{level: proficiency.LevelDomain, scope: domain, ev: batch},
	)

	now := s.now()

	before, err := s.repo.Get(ctx, studentID, proficiency.LevelModule, moduleID)
	if err != nil {
		return nil, err
	}
	wasMastered := s.engine.IsMastered(before, now)

	var moduleRec *proficiency.Record
	err = s.repo.InTx(ctx, studentID, func(tx store.Txn) error {
		for _, u := range updates {
			rec, err := tx.GetOrCreate(ctx, studentID, u.level, u.scope)
			if err != nil {
				return err
			}
			if err := proficiency.Apply(s.cfg, rec, u.ev, now); err != nil {
				return err
			}
			if err := tx.Save(ctx, rec); err != nil {
				return err
			}
			if u.level == proficiency.LevelModule {
				moduleRec = rec
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		AttemptID:     uuid.NewString(),
		StudentID:     studentID,
		ModuleID:      moduleID,
		Domain:        domain,
		Correct:       batch.Correct,
		Total:         batch.Total(),
		ModuleAbility: proficiency.DecayedMean(moduleRec, now),
		Mastered:      s.engine.IsMastered(moduleRec, now),
	}
	summary.NewlyMastered = summary.Mastered && !wasMastered

	if s.events != nil {
		ev := store.ActivityEvent{
			AttemptID: summary.AttemptID,
			StudentID: studentID,
			ModuleID:  moduleID,
			Domain:    domain,
			Correct:   batch.Correct,
			Total:     batch.Total(),
			CreatedAt: now,
		}
		// Log the event but don't fail the submission if logging fails.
		if logErr := s.events.AppendActivity(ctx, ev); logErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to log activity event: %v\n", logErr)
		}
	}

	return summary, nil
}

// CheckMastery reports whether a module currently computes as mastered
// for a student. Callers use this to unlock downstream content.
func (s *Service) CheckMastery(ctx context.Context, studentID, moduleID string) (bool, error) {
	rec, err := s.repo.Get(ctx, studentID, proficiency.LevelModule, moduleID)
	if err != nil {
		return false, err
	}
	return s.engine.IsMastered(rec, s.now()), nil
}
