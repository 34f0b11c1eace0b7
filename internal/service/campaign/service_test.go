package campaign

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftpoint/attendance-backend-go/internal/domain/campaign"
	"github.com/shiftpoint/attendance-backend-go/internal/pkg/validator"
)

type fakeCampaignRepo struct {
	campaigns map[string]campaign.Campaign
	nextID    int
}

func newFakeCampaignRepo() *fakeCampaignRepo {
	return &fakeCampaignRepo{campaigns: map[string]campaign.Campaign{}}
}

func (f *fakeCampaignRepo) Create(_ context.Context, c campaign.Campaign) (campaign.Campaign, error) {
	f.nextID++
	c.ID = fmt.Sprintf("c%d", f.nextID)
	f.campaigns[c.ID] = c
	return c, nil
}

func (f *fakeCampaignRepo) GetByID(_ context.Context, id string) (campaign.Campaign, error) {
	c, ok := f.campaigns[id]
	if !ok {
		return campaign.Campaign{}, campaign.ErrCampaignNotFound
	}
	return c, nil
}

func (f *fakeCampaignRepo) Update(_ context.Context, c campaign.Campaign) error {
	if _, ok := f.campaigns[c.ID]; !ok {
		return campaign.ErrCampaignNotFound
	}
	f.campaigns[c.ID] = c
	return nil
}

func (f *fakeCampaignRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.campaigns[id]; !ok {
		return campaign.ErrCampaignNotFound
	}
	delete(f.campaigns, id)
	return nil
}

func (f *fakeCampaignRepo) List(_ context.Context) ([]campaign.Campaign, error) {
	out := make([]campaign.Campaign, 0, len(f.campaigns))
	for _, c := range f.campaigns {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCampaignRepo) ListScheduled(_ context.Context) ([]campaign.Campaign, error) {
	var out []campaign.Campaign
	for _, c := range f.campaigns {
		if c.WorkDayStart != nil {
			out = append(out, c)
		}
	}
	return out, nil
}

func strPtr(s string) *string { return &s }

func TestCreate_ValidSchedule(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeCampaignRepo())

	created, err := svc.Create(context.Background(), campaign.CreateCampaignRequest{
		Name:         "Sales",
		WorkDayStart: strPtr("09:00"),
		WorkDayEnd:   strPtr("17:30"),
		LunchStart:   strPtr("12:00"),
		LunchEnd:     strPtr("12:30"),
		TeaBreaks: []campaign.TeaBreak{
			{Start: "10:15", End: "10:30"},
			{Start: "15:00", End: "15:15"},
		},
		Timezone: "Africa/Johannesburg",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Sales", created.Name)
	assert.Len(t, created.TeaBreaks, 2)
}

func TestCreate_RejectsInvertedWindows(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeCampaignRepo())

	_, err := svc.Create(context.Background(), campaign.CreateCampaignRequest{
		Name:         "Sales",
		WorkDayStart: strPtr("17:00"),
		WorkDayEnd:   strPtr("09:00"),
		Timezone:     "UTC",
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "work_day")
}

func TestCreate_RejectsInvertedTeaBreak(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeCampaignRepo())

	_, err := svc.Create(context.Background(), campaign.CreateCampaignRequest{
		Name:      "Sales",
		TeaBreaks: []campaign.TeaBreak{{Start: "10:30", End: "10:15"}},
		Timezone:  "UTC",
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "tea_breaks")
}

func TestCreate_PartialScheduleAllowed(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeCampaignRepo())

	// Only a start: the pair is not fully specified, so no ordering
	// check applies.
	created, err := svc.Create(context.Background(), campaign.CreateCampaignRequest{
		Name:         "Night Shift",
		WorkDayStart: strPtr("22:00"),
		Timezone:     "UTC",
	})
	require.NoError(t, err)
	assert.Nil(t, created.WorkDayEnd)
}

func TestUpdate_ReplacesSchedule(t *testing.T) {
	t.Parallel()

	repo := newFakeCampaignRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), campaign.CreateCampaignRequest{
		Name:         "Billing",
		WorkDayStart: strPtr("08:00"),
		WorkDayEnd:   strPtr("16:00"),
		Timezone:     "UTC",
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), campaign.UpdateCampaignRequest{
		ID: created.ID,
		CreateCampaignRequest: campaign.CreateCampaignRequest{
			Name:     "Billing",
			Timezone: "UTC",
		},
	})
	require.NoError(t, err)
	assert.Nil(t, updated.WorkDayStart)

	stored, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.WorkDayStart)
}

func TestDelete_UnknownCampaign(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeCampaignRepo())

	err := svc.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, campaign.ErrCampaignNotFound)
}
