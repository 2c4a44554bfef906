package services

import (
	"time"

	"itinera/internal/itinerary"
	"itinera/internal/models/request_models"
	"itinera/internal/models/response_models"
	"itinera/pkg/utils"
)

func toDraftResponse(s DraftSession, policy itinerary.GapPolicy) *response_models.DraftResponse {
	d := s.Draft
	bounds := d.Bounds()

	summaries := d.DaySummaries()
	days := make([]response_models.DayResponse, 0, len(summaries))
	for _, sum := range summaries {
		days = append(days, toDayResponse(sum, d.ItemsForDay(sum.DayNumber), policy))
	}

	var orphans []response_models.ItemResponse
	for _, it := range d.Orphans() {
		orphans = append(orphans, toItemResponse(it))
	}

	return &response_models.DraftResponse{
		DraftID:   s.ID,
		Title:     s.Title,
		StartDate: utils.FormatDate(bounds.StartDate),
		EndDate:   utils.FormatDate(bounds.EndDate),
		TotalDays: d.TotalDays(),
		Travelers: d.Travelers(),
		ItemCount: d.Len(),
		Days:      days,
		Orphans:   orphans,
	}
}

func toDayResponse(sum itinerary.DaySummary, items []itinerary.Item, policy itinerary.GapPolicy) response_models.DayResponse {
	out := make([]response_models.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toItemResponse(it))
	}
	return response_models.DayResponse{
		DayNumber:       sum.DayNumber,
		Date:            utils.FormatDate(sum.Date),
		IsEmpty:         sum.IsEmpty,
		OccupiedMinutes: sum.OccupiedMinutes,
		Items:           out,
		Gaps:            policy.DayGaps(items),
	}
}

func toDaySummaryResponse(sum itinerary.DaySummary) response_models.DaySummaryResponse {
	return response_models.DaySummaryResponse{
		DayNumber:       sum.DayNumber,
		Date:            utils.FormatDate(sum.Date),
		ItemCount:       sum.ItemCount,
		IsEmpty:         sum.IsEmpty,
		OccupiedMinutes: sum.OccupiedMinutes,
		Occupied:        utils.FormatDuration(sum.OccupiedMinutes),
	}
}

func toItemResponse(it itinerary.Item) response_models.ItemResponse {
	duration := ""
	if m, err := utils.DurationMinutes(it.StartTime, it.EndTime); err == nil {
		duration = utils.FormatDuration(m)
	}
	return response_models.ItemResponse{
		ExperienceID:  it.ExperienceID,
		DayNumber:     it.DayNumber,
		StartTime:     it.StartTime,
		EndTime:       it.EndTime,
		DisplayTime:   displayRange(it.StartTime, it.EndTime),
		Duration:      duration,
		CustomNote:    it.CustomNote,
		Name:          it.DisplayName(),
		Location:      it.Snapshot.Location,
		Price:         it.Snapshot.Price,
		PriceUnit:     it.Snapshot.PriceUnit,
		PriceEstimate: it.Snapshot.PriceEstimateText,
		Images:        it.Snapshot.Images,
	}
}

func toSlotResponse(opt itinerary.SlotOption) response_models.SlotResponse {
	return response_models.SlotResponse{
		StartTime:     opt.StartTime,
		EndTime:       opt.EndTime,
		DisplayTime:   displayRange(opt.StartTime, opt.EndTime),
		Selectable:    opt.Selectable,
		BlockedBy:     opt.BlockedBy,
		BlockedByName: opt.BlockedByName,
	}
}

func displayRange(start, end string) string {
	return utils.FormatClockForDisplay(start) + " - " + utils.FormatClockForDisplay(end)
}

func toSnapshot(req request_models.SnapshotRequest, at time.Time) itinerary.ExperienceSnapshot {
	var images []string
	if len(req.Images) > 0 {
		images = append(images, req.Images...)
	}
	return itinerary.ExperienceSnapshot{
		Name:              req.Name,
		Location:          req.Location,
		Price:             req.Price,
		PriceUnit:         req.PriceUnit,
		PriceEstimateText: req.PriceEstimate,
		Images:            images,
		CapturedAt:        at,
	}
}

func toItemKey(req request_models.ItemKeyRequest) itinerary.ItemKey {
	return itinerary.ItemKey{
		ExperienceID: req.ExperienceID,
		DayNumber:    req.DayNumber,
		StartTime:    req.StartTime,
	}
}
