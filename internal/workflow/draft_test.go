package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	customer    CustomerSummary
	options     []FragranceOption
	customerErr error
	optionsErr  error
}

func (c fakeCatalog) Customer(context.Context, uint) (CustomerSummary, error) {
	return c.customer, c.customerErr
}

func (c fakeCatalog) Fragrances(context.Context) ([]FragranceOption, error) {
	return c.options, c.optionsErr
}

type recordingSubmitter struct {
	calls []Submission
	id    uint
	err   error
}

func (s *recordingSubmitter) SubmitComposition(_ context.Context, sub Submission) (uint, error) {
	s.calls = append(s.calls, sub)
	return s.id, s.err
}

var (
	bergamot = FragranceOption{ID: 1, Name: "Bergamotte", Code: 101}
	rose     = FragranceOption{ID: 4, Name: "Rose", Code: 301}
	vanilla  = FragranceOption{ID: 5, Name: "Vanille", Code: 401}
)

func editingDraft(t *testing.T) *Draft {
	t.Helper()
	d := NewDraft(7)
	require.NoError(t, d.Load(context.Background(), fakeCatalog{
		customer: CustomerSummary{ID: 7, FullName: "Maria Schmidt"},
		options:  []FragranceOption{bergamot, rose, vanilla},
	}))
	require.Equal(t, StateEditing, d.State)
	return d
}

func TestLoadMovesToEditing(t *testing.T) {
	t.Parallel()

	d := editingDraft(t)
	assert.Equal(t, "Maria Schmidt", d.Customer.FullName)
	assert.Len(t, d.Options, 3)

	opt, ok := d.Option(4)
	assert.True(t, ok)
	assert.Equal(t, "Rose (301)", opt.Label())

	_, ok = d.Option(99)
	assert.False(t, ok)
}

func TestLoadFailureMovesToError(t *testing.T) {
	t.Parallel()

	d := NewDraft(7)
	err := d.Load(context.Background(), fakeCatalog{optionsErr: errors.New("catalog offline")})
	require.Error(t, err)
	assert.Equal(t, StateError, d.State)
	assert.Contains(t, d.Message, "catalog offline")

	d.Dismiss()
	assert.Equal(t, StateError, d.State, "a draft that never loaded stays in the error state")
}

func TestAddLineMergesSameFragrance(t *testing.T) {
	t.Parallel()

	d := editingDraft(t)
	require.NoError(t, d.AddLine(rose, 30))
	require.NoError(t, d.AddLine(rose, 20))

	require.Len(t, d.Lines, 1)
	assert.Equal(t, 50.0, d.Lines[0].Amount)
	assert.Equal(t, "Rose", d.Lines[0].FragranceName)
	assert.Equal(t, 50.0, d.Total())
}

func TestAddLineRejectsBadInput(t *testing.T) {
	t.Parallel()

	d := editingDraft(t)
	assert.ErrorIs(t, d.AddLine(rose, 0), ErrInvalidAmount)
	assert.ErrorIs(t, d.AddLine(rose, -5), ErrInvalidAmount)
	assert.ErrorIs(t, d.AddLine(FragranceOption{}, 10), ErrUnknownFragrance)
	assert.Empty(t, d.Lines)
}

func TestAddLineKeepsNameSnapshot(t *testing.T) {
	t.Parallel()

	d := editingDraft(t)
	require.NoError(t, d.AddLine(rose, 10))
	d.Options[1].Name = "Damaszener Rose"
	require.NoError(t, d.AddLine(d.Options[1], 10))

	require.Len(t, d.Lines, 1)
	assert.Equal(t, "Rose", d.Lines[0].FragranceName)
}

func TestRemoveLineByIndex(t *testing.T) {
	t.Parallel()

	d := editingDraft(t)
	require.NoError(t, d.AddLine(bergamot, 10))
	require.NoError(t, d.AddLine(rose, 20))
	require.NoError(t, d.AddLine(vanilla, 20))

	require.NoError(t, d.RemoveLine(1))
	require.Len(t, d.Lines, 2)
	assert.Equal(t, bergamot.ID, d.Lines[0].FragranceID)
	assert.Equal(t, vanilla.ID, d.Lines[1].FragranceID)
	assert.Equal(t, 30.0, d.Total())

	assert.ErrorIs(t, d.RemoveLine(2), ErrLineOutOfRange)
	assert.ErrorIs(t, d.RemoveLine(-1), ErrLineOutOfRange)
}

func TestSubmitRejectsInvalidTotalsWithoutCallingAPI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		amounts []float64
		want    error
	}{
		{"no lines", nil, ErrNoLines},
		{"one over", []float64{30, 21}, ErrInvalidTotal},
		{"between sizes", []float64{75}, ErrInvalidTotal},
	}

	for _, tt := range tests {
		d := editingDraft(t)
		options := []FragranceOption{bergamot, rose, vanilla}
		for i, amount := range tt.amounts {
			require.NoError(t, d.AddLine(options[i], amount))
		}

		submitter := &recordingSubmitter{id: 1}
		err := d.Submit(context.Background(), submitter)
		assert.ErrorIs(t, err, tt.want, tt.name)
		assert.Empty(t, submitter.calls, tt.name)
		assert.Equal(t, StateEditing, d.State, tt.name)
		assert.Equal(t, tt.want.Error(), d.Message, tt.name)
		assert.False(t, d.Ready(), tt.name)
	}
}

func TestSubmitAcceptsBottleSizes(t *testing.T) {
	t.Parallel()

	for _, amounts := range [][]float64{{30, 20}, {50, 25, 25}} {
		d := editingDraft(t)
		d.Name = "  Sommerabend "
		options := []FragranceOption{bergamot, rose, vanilla}
		for i, amount := range amounts {
			require.NoError(t, d.AddLine(options[i], amount))
		}
		require.True(t, d.Ready())

		submitter := &recordingSubmitter{id: 42}
		require.NoError(t, d.Submit(context.Background(), submitter))
		require.Len(t, submitter.calls, 1)

		sub := submitter.calls[0]
		assert.Equal(t, uint(7), sub.CustomerID)
		assert.Equal(t, "Sommerabend", sub.Name)
		assert.Equal(t, d.Total(), sub.TotalAmount)
		assert.Len(t, sub.Lines, len(amounts))
		assert.Equal(t, StateSubmitted, d.State)
		assert.Equal(t, uint(42), d.CreatedID)
	}
}

func TestSubmitFailureKeepsDraft(t *testing.T) {
	t.Parallel()

	d := editingDraft(t)
	require.NoError(t, d.AddLine(rose, 50))

	apiErr := errors.New("500 internal server error")
	err := d.Submit(context.Background(), &recordingSubmitter{err: apiErr})
	require.ErrorIs(t, err, apiErr)
	assert.Equal(t, StateError, d.State)
	assert.Equal(t, SubmitFailedMessage, d.Message)
	require.Len(t, d.Lines, 1)

	assert.ErrorIs(t, d.AddLine(vanilla, 10), ErrNotEditing)
	assert.ErrorIs(t, d.Submit(context.Background(), &recordingSubmitter{}), ErrNotEditing)

	d.Dismiss()
	assert.Equal(t, StateEditing, d.State)
	assert.Empty(t, d.Message)

	submitter := &recordingSubmitter{id: 9}
	require.NoError(t, d.Submit(context.Background(), submitter))
	assert.Equal(t, StateSubmitted, d.State)
	assert.Len(t, submitter.calls, 1)
}

func TestSubmissionCopiesLines(t *testing.T) {
	t.Parallel()

	d := editingDraft(t)
	require.NoError(t, d.AddLine(rose, 50))

	sub := d.Submission()
	sub.Lines[0].Amount = 1
	assert.Equal(t, 50.0, d.Lines[0].Amount)
}
