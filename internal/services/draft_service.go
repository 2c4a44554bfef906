package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"itinera/internal/catalog"
	"itinera/internal/config"
	"itinera/internal/generation"
	"itinera/internal/itinerary"
	"itinera/internal/models/request_models"
	"itinera/internal/models/response_models"
	"itinera/internal/repositories"
	mem "itinera/pkg/memcache"
	"itinera/pkg/utils"
)

// DraftSession is one editing session: the draft plus the availability cache
// that lives exactly as long as it does.
type DraftSession struct {
	ID     string
	Title  string
	Draft  itinerary.Draft
	Loader *catalog.AvailabilityLoader
}

type DraftServiceInterface interface {
	CreateDraft(ctx context.Context, req request_models.CreateDraftRequest) (*response_models.DraftResponse, error)
	GetDraft(ctx context.Context, draftId string) (*response_models.DraftResponse, error)
	UpdateBounds(ctx context.Context, draftId string, req request_models.UpdateBoundsRequest) (*response_models.DraftResponse, error)
	UpdateTravelers(ctx context.Context, draftId string, travelers int) (*response_models.DraftResponse, error)

	AddItem(ctx context.Context, draftId string, req request_models.AddItemRequest) (*response_models.DraftResponse, error)
	RemoveItem(ctx context.Context, draftId string, key request_models.ItemKeyRequest) (*response_models.DraftResponse, error)
	RescheduleItem(ctx context.Context, draftId string, req request_models.RescheduleItemRequest) (*response_models.DraftResponse, error)

	GetDaySummaries(ctx context.Context, draftId string) ([]response_models.DaySummaryResponse, error)
	GetDay(ctx context.Context, draftId string, dayNumber int) (*response_models.DayResponse, error)
	GetConflicts(ctx context.Context, draftId string, dayNumber int, start, end string, exclude *itinerary.ItemKey) (*response_models.ConflictsResponse, error)
	GetBudget(ctx context.Context, draftId string) (*itinerary.Budget, error)

	GetAvailability(ctx context.Context, draftId, experienceId string, dayNumber int, editing *itinerary.ItemKey, refresh bool) (*response_models.AvailabilityResponse, error)
	SelectSlot(ctx context.Context, draftId, experienceId string, req request_models.SelectSlotRequest) (*response_models.SelectSlotResponse, error)

	FinalizeDraft(ctx context.Context, draftId string, title string) (*response_models.FinalizeResponse, error)
	GenerateDraft(ctx context.Context, req request_models.GenerateDraftRequest) (*response_models.GenerateResponse, error)
}

type DraftService struct {
	sessions      mem.SessionStore[DraftSession]
	catalog       catalog.Client
	generator     generation.Client
	itineraryRepo repositories.ItineraryRepository
	policy        itinerary.GapPolicy
	loadTimeout   time.Duration
	logger        *zap.Logger
	now           func() time.Time
}

func NewDraftService(
	sessions mem.SessionStore[DraftSession],
	catalogClient catalog.Client,
	generator generation.Client,
	itineraryRepo repositories.ItineraryRepository,
	cfg config.Config,
	logger *zap.Logger,
) DraftServiceInterface {
	policy := itinerary.DefaultGapPolicy()
	if cfg.GapTightMinutes > 0 {
		policy.TightMinutes = cfg.GapTightMinutes
	}
	if cfg.GapExcessiveMinutes > 0 {
		policy.ExcessiveMinutes = cfg.GapExcessiveMinutes
	}
	timeout := cfg.CatalogTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &DraftService{
		sessions:      sessions,
		catalog:       catalogClient,
		generator:     generator,
		itineraryRepo: itineraryRepo,
		policy:        policy,
		loadTimeout:   timeout,
		logger:        logger,
		now:           time.Now,
	}
}

func (s *DraftService) CreateDraft(ctx context.Context, req request_models.CreateDraftRequest) (*response_models.DraftResponse, error) {
	bounds, err := parseBounds(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	draft, err := itinerary.NewDraft(bounds, travelersOrDefault(req.Travelers))
	if err != nil {
		return nil, err
	}

	session := s.newSession(strings.TrimSpace(req.Title), draft)
	s.sessions.Put(session.ID, session)
	s.logger.Info("draft created",
		zap.String("draft_id", session.ID),
		zap.Int("total_days", draft.TotalDays()))

	return toDraftResponse(session, s.policy), nil
}

func (s *DraftService) GetDraft(ctx context.Context, draftId string) (*response_models.DraftResponse, error) {
	session, err := s.session(draftId)
	if err != nil {
		return nil, err
	}
	return toDraftResponse(session, s.policy), nil
}

func (s *DraftService) UpdateBounds(ctx context.Context, draftId string, req request_models.UpdateBoundsRequest) (*response_models.DraftResponse, error) {
	bounds, err := parseBounds(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	return s.mutate(draftId, func(d itinerary.Draft) (itinerary.Draft, error) {
		return d.SetBounds(bounds)
	})
}

func (s *DraftService) UpdateTravelers(ctx context.Context, draftId string, travelers int) (*response_models.DraftResponse, error) {
	return s.mutate(draftId, func(d itinerary.Draft) (itinerary.Draft, error) {
		return d.SetTravelers(travelers)
	})
}

func (s *DraftService) AddItem(ctx context.Context, draftId string, req request_models.AddItemRequest) (*response_models.DraftResponse, error) {
	item := itinerary.Item{
		ExperienceID: req.ExperienceID,
		DayNumber:    req.DayNumber,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		CustomNote:   req.CustomNote,
		Snapshot:     toSnapshot(req.Snapshot, s.now()),
	}
	return s.mutate(draftId, func(d itinerary.Draft) (itinerary.Draft, error) {
		return d.Add(item)
	})
}

func (s *DraftService) RemoveItem(ctx context.Context, draftId string, key request_models.ItemKeyRequest) (*response_models.DraftResponse, error) {
	return s.mutate(draftId, func(d itinerary.Draft) (itinerary.Draft, error) {
		return d.Remove(toItemKey(key)), nil
	})
}

func (s *DraftService) RescheduleItem(ctx context.Context, draftId string, req request_models.RescheduleItemRequest) (*response_models.DraftResponse, error) {
	return s.mutate(draftId, func(d itinerary.Draft) (itinerary.Draft, error) {
		return d.Reschedule(toItemKey(req.Item), req.NewDayNumber, req.NewStartTime, req.NewEndTime)
	})
}

func (s *DraftService) GetDaySummaries(ctx context.Context, draftId string) ([]response_models.DaySummaryResponse, error) {
	session, err := s.session(draftId)
	if err != nil {
		return nil, err
	}
	summaries := session.Draft.DaySummaries()
	out := make([]response_models.DaySummaryResponse, 0, len(summaries))
	for _, sum := range summaries {
		out = append(out, toDaySummaryResponse(sum))
	}
	return out, nil
}

func (s *DraftService) GetDay(ctx context.Context, draftId string, dayNumber int) (*response_models.DayResponse, error) {
	session, err := s.session(draftId)
	if err != nil {
		return nil, err
	}
	d := session.Draft
	if !d.Bounds().Contains(dayNumber) {
		return nil, utils.ErrDayOutOfRange
	}

	for _, sum := range d.DaySummaries() {
		if sum.DayNumber == dayNumber {
			day := toDayResponse(sum, d.ItemsForDay(dayNumber), s.policy)
			return &day, nil
		}
	}
	return nil, utils.ErrDayOutOfRange
}

func (s *DraftService) GetConflicts(ctx context.Context, draftId string, dayNumber int, start, end string, exclude *itinerary.ItemKey) (*response_models.ConflictsResponse, error) {
	candidate, err := itinerary.NewRange(start, end)
	if err != nil {
		return nil, err
	}
	session, err := s.session(draftId)
	if err != nil {
		return nil, err
	}

	conflicts := session.Draft.ConflictsFor(candidate, dayNumber, normalizeKey(exclude))
	out := make([]response_models.ItemResponse, 0, len(conflicts))
	for _, it := range conflicts {
		out = append(out, toItemResponse(it))
	}
	return &response_models.ConflictsResponse{HasConflict: len(out) > 0, Conflicts: out}, nil
}

func (s *DraftService) GetBudget(ctx context.Context, draftId string) (*itinerary.Budget, error) {
	session, err := s.session(draftId)
	if err != nil {
		return nil, err
	}
	budget := session.Draft.BudgetEstimate()
	return &budget, nil
}

// GetAvailability matches the experience's catalog slots against the day.
// With refresh set the session's cached availability is dropped first.
func (s *DraftService) GetAvailability(ctx context.Context, draftId, experienceId string, dayNumber int, editing *itinerary.ItemKey, refresh bool) (*response_models.AvailabilityResponse, error) {
	if refresh {
		session, err := s.session(draftId)
		if err != nil {
			return nil, err
		}
		session.Loader.Invalidate(strings.TrimSpace(experienceId))
	}
	match, err := s.matchSlots(ctx, draftId, experienceId, dayNumber, editing)
	if err != nil {
		return nil, err
	}

	slots := make([]response_models.SlotResponse, 0, len(match.Slots))
	for _, opt := range match.Slots {
		slots = append(slots, toSlotResponse(opt))
	}
	return &response_models.AvailabilityResponse{
		ExperienceID: experienceId,
		DayNumber:    dayNumber,
		Date:         match.Date,
		Weekday:      match.Weekday,
		Loaded:       match.Loaded,
		Offered:      match.Offered,
		Slots:        slots,
	}, nil
}

func (s *DraftService) SelectSlot(ctx context.Context, draftId, experienceId string, req request_models.SelectSlotRequest) (*response_models.SelectSlotResponse, error) {
	var editing *itinerary.ItemKey
	if req.Editing != nil {
		k := toItemKey(*req.Editing)
		editing = &k
	}

	match, err := s.matchSlots(ctx, draftId, experienceId, req.DayNumber, editing)
	if err != nil {
		return nil, err
	}
	if !offersSlot(match, req.StartTime, req.EndTime) {
		return nil, fmt.Errorf("%w: %s-%s is not offered on %s", utils.ErrInvalidInput, req.StartTime, req.EndTime, match.Weekday)
	}

	template := itinerary.Item{
		ExperienceID: experienceId,
		DayNumber:    req.DayNumber,
		CustomNote:   req.CustomNote,
		Snapshot:     toSnapshot(req.Snapshot, s.now()),
	}
	if editing != nil {
		template.ExperienceID = editing.ExperienceID
	}
	slot := itinerary.TimeSlot{StartTime: req.StartTime, EndTime: req.EndTime}

	var placed itinerary.Item
	updated, ok, err := s.sessions.Update(draftId, func(cur DraftSession) (DraftSession, error) {
		next, item, err := itinerary.SelectSlot(cur.Draft, template, slot, editing)
		if err != nil {
			return cur, err
		}
		placed = item
		cur.Draft = next
		return cur, nil
	})
	if !ok {
		return nil, utils.ErrDraftNotFound
	}
	if err != nil {
		return nil, err
	}

	return &response_models.SelectSlotResponse{
		Item:  toItemResponse(placed),
		Draft: *toDraftResponse(updated, s.policy),
	}, nil
}

func (s *DraftService) FinalizeDraft(ctx context.Context, draftId string, title string) (*response_models.FinalizeResponse, error) {
	session, err := s.session(draftId)
	if err != nil {
		return nil, err
	}
	if err := session.Draft.Finalizable(); err != nil {
		return nil, err
	}

	if title = strings.TrimSpace(title); title == "" {
		title = session.Title
	}
	id, err := s.itineraryRepo.CreateFromDraft(ctx, title, session.Draft)
	if err != nil {
		s.logger.Error("persist itinerary failed", zap.String("draft_id", draftId), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	s.sessions.Delete(draftId)
	s.logger.Info("draft finalized",
		zap.String("draft_id", draftId),
		zap.String("itinerary_id", id.String()),
		zap.Int("items", session.Draft.Len()))

	return &response_models.FinalizeResponse{ItineraryID: id.String()}, nil
}

// GenerateDraft asks the generation service for a plan and loads every
// proposed activity through Draft.Add. Activities the draft refuses are
// reported next to the draft instead of being forced in.
func (s *DraftService) GenerateDraft(ctx context.Context, req request_models.GenerateDraftRequest) (*response_models.GenerateResponse, error) {
	bounds, err := parseBounds(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	travelers := travelersOrDefault(req.Travelers)

	generated, err := s.generator.Generate(ctx, generation.Request{
		City:      req.City,
		StartDate: utils.FormatDate(bounds.StartDate),
		EndDate:   utils.FormatDate(bounds.EndDate),
		Travelers: travelers,
		Preferences: generation.Preferences{
			ActivityTags:      req.ActivityTags,
			CompanionType:     req.CompanionType,
			TimeOfDay:         req.TimeOfDay,
			BudgetTier:        req.BudgetTier,
			Intensity:         req.Intensity,
			DistanceTolerance: req.DistanceTolerance,
		},
	})
	var noResults *generation.NoResultsError
	if errors.As(err, &noResults) {
		s.logger.Info("generation returned no results", zap.String("city", req.City))
		return &response_models.GenerateResponse{
			Status:     "no_results",
			Diagnostic: noResults.Diagnostic,
		}, nil
	}
	if err != nil {
		return nil, err
	}

	draft, err := itinerary.NewDraft(bounds, travelers)
	if err != nil {
		return nil, err
	}

	capturedAt := s.now()
	var rejected []response_models.RejectedItem
	for _, g := range generated {
		item := g.ToItem(capturedAt)
		next, err := draft.Add(item)
		if err != nil {
			rejected = append(rejected, response_models.RejectedItem{
				Item:   toItemResponse(item),
				Reason: err.Error(),
			})
			continue
		}
		draft = next
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = req.City
	}
	session := s.newSession(title, draft)
	s.sessions.Put(session.ID, session)

	if len(rejected) > 0 {
		s.logger.Warn("generated items rejected by draft",
			zap.String("draft_id", session.ID),
			zap.Int("rejected", len(rejected)))
	}

	return &response_models.GenerateResponse{
		Status:   "ok",
		Draft:    toDraftResponse(session, s.policy),
		Rejected: rejected,
	}, nil
}

func (s *DraftService) newSession(title string, draft itinerary.Draft) DraftSession {
	return DraftSession{
		ID:     uuid.NewString(),
		Title:  title,
		Draft:  draft,
		Loader: catalog.NewAvailabilityLoader(s.catalog, s.loadTimeout),
	}
}

func (s *DraftService) session(draftId string) (DraftSession, error) {
	session, ok := s.sessions.Get(draftId)
	if !ok {
		return DraftSession{}, utils.ErrDraftNotFound
	}
	return session, nil
}

func (s *DraftService) mutate(draftId string, fn func(itinerary.Draft) (itinerary.Draft, error)) (*response_models.DraftResponse, error) {
	updated, ok, err := s.sessions.Update(draftId, func(cur DraftSession) (DraftSession, error) {
		next, err := fn(cur.Draft)
		if err != nil {
			return cur, err
		}
		cur.Draft = next
		return cur, nil
	})
	if !ok {
		return nil, utils.ErrDraftNotFound
	}
	if err != nil {
		return nil, err
	}
	return toDraftResponse(updated, s.policy), nil
}

// matchSlots loads the experience's catalog through the session loader (so a
// second request for the same experience reuses it) and matches it against
// the items already on the target day.
func (s *DraftService) matchSlots(ctx context.Context, draftId, experienceId string, dayNumber int, editing *itinerary.ItemKey) (itinerary.SlotMatch, error) {
	experienceId = strings.TrimSpace(experienceId)
	if experienceId == "" {
		return itinerary.SlotMatch{}, utils.ErrInvalidInput
	}
	session, err := s.session(draftId)
	if err != nil {
		return itinerary.SlotMatch{}, err
	}
	bounds := session.Draft.Bounds()
	if !bounds.Contains(dayNumber) {
		return itinerary.SlotMatch{}, utils.ErrDayOutOfRange
	}

	days, err := session.Loader.Load(ctx, experienceId)
	if err != nil {
		s.logger.Warn("availability load failed",
			zap.String("experience_id", experienceId),
			zap.Error(err))
		if errors.Is(err, utils.ErrAvailabilityUnavailable) {
			return itinerary.SlotMatch{}, err
		}
		return itinerary.SlotMatch{}, fmt.Errorf("%w: %v", utils.ErrAvailabilityUnavailable, err)
	}

	// Re-read so items added while the catalog was loading are accounted for.
	if fresh, err := s.session(draftId); err == nil {
		session = fresh
	}
	match := itinerary.MatchAvailability(
		bounds.DateOf(dayNumber),
		days,
		true,
		session.Draft.ItemsForDay(dayNumber),
		normalizeKey(editing),
	)
	return match, nil
}

func offersSlot(match itinerary.SlotMatch, start, end string) bool {
	start, err := utils.NormalizeClock(start)
	if err != nil {
		return false
	}
	end, err = utils.NormalizeClock(end)
	if err != nil {
		return false
	}
	for _, opt := range match.Slots {
		if opt.StartTime == start && opt.EndTime == end {
			return true
		}
	}
	return false
}

// normalizeKey lets callers send "09:00:00" for an item stored as "09:00".
func normalizeKey(k *itinerary.ItemKey) *itinerary.ItemKey {
	if k == nil {
		return nil
	}
	out := *k
	out.ExperienceID = strings.TrimSpace(out.ExperienceID)
	if start, err := utils.NormalizeClock(out.StartTime); err == nil {
		out.StartTime = start
	}
	return &out
}

func parseBounds(start, end string) (itinerary.TripBounds, error) {
	startDate, err := utils.ParseDate(start)
	if err != nil {
		return itinerary.TripBounds{}, fmt.Errorf("%w: start_date %q", utils.ErrInvalidInput, start)
	}
	endDate, err := utils.ParseDate(end)
	if err != nil {
		return itinerary.TripBounds{}, fmt.Errorf("%w: end_date %q", utils.ErrInvalidInput, end)
	}
	return itinerary.NewTripBounds(startDate, endDate)
}

func travelersOrDefault(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
