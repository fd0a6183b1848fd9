// Package workflow holds the composition draft a customer builds before it is
// sent to the studio API. A draft only reaches the API once it has at least
// one line and its volume matches a bottle size.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"parfumerie/models"
)

type State string

const (
	StateLoading    State = "loading"
	StateEditing    State = "editing"
	StateSubmitting State = "submitting"
	StateSubmitted  State = "submitted"
	StateError      State = "error"
)

// RedirectDelay is how long the confirmation stays visible before the
// customer page is shown again.
const RedirectDelay = 1500 * time.Millisecond

// SubmitFailedMessage is shown whenever the API rejects a submission. The
// draft keeps its lines so the user can retry.
const SubmitFailedMessage = "The composition could not be saved. Please try again."

var (
	ErrNoLines          = errors.New("add at least one fragrance to the composition")
	ErrInvalidTotal     = errors.New("the total volume must be exactly 50 ml or 100 ml")
	ErrInvalidAmount    = errors.New("the amount must be greater than zero")
	ErrUnknownFragrance = errors.New("unknown fragrance")
	ErrNotEditing       = errors.New("the draft cannot be changed right now")
	ErrLineOutOfRange   = errors.New("no line at that position")
)

// FragranceOption is a fragrance the user can pick while editing.
type FragranceOption struct {
	ID   uint
	Name string
	Code int
}

// Label renders the option the way pick lists show it.
func (o FragranceOption) Label() string {
	return fmt.Sprintf("%s (%d)", o.Name, o.Code)
}

type CustomerSummary struct {
	ID       uint
	FullName string
}

// Line is one fragrance of the draft. FragranceName is a snapshot taken when
// the line was added.
type Line struct {
	FragranceID   uint
	FragranceName string
	Amount        float64
}

// Catalog provides the data a draft needs before editing starts.
type Catalog interface {
	Customer(ctx context.Context, id uint) (CustomerSummary, error)
	Fragrances(ctx context.Context) ([]FragranceOption, error)
}

// Submission is the single creation request a draft turns into.
type Submission struct {
	CustomerID  uint
	Name        string
	TotalAmount float64
	Lines       []Line
}

// Submitter stores a submission and returns the new composition id.
type Submitter interface {
	SubmitComposition(ctx context.Context, s Submission) (uint, error)
}

// Draft is safe to store in a session; all fields are exported plain values.
type Draft struct {
	CustomerID uint
	Customer   CustomerSummary
	Name       string
	Options    []FragranceOption
	Lines      []Line
	State      State
	Message    string
	CreatedID  uint
	Loaded     bool
}

func NewDraft(customerID uint) *Draft {
	return &Draft{CustomerID: customerID, State: StateLoading}
}

// Load fetches the customer and the fragrance options. On failure the draft
// moves to the error state and keeps the loader's message.
func (d *Draft) Load(ctx context.Context, catalog Catalog) error {
	d.State = StateLoading

	customer, err := catalog.Customer(ctx, d.CustomerID)
	if err != nil {
		d.fail(fmt.Sprintf("could not load customer: %v", err))
		return fmt.Errorf("load customer %d: %w", d.CustomerID, err)
	}
	options, err := catalog.Fragrances(ctx)
	if err != nil {
		d.fail(fmt.Sprintf("could not load fragrances: %v", err))
		return fmt.Errorf("load fragrances: %w", err)
	}

	d.Customer = customer
	d.Options = options
	d.Loaded = true
	d.State = StateEditing
	d.Message = ""
	return nil
}

func (d *Draft) fail(message string) {
	d.State = StateError
	d.Message = message
}

// Option returns the loaded option with the given fragrance id.
func (d *Draft) Option(fragranceID uint) (FragranceOption, bool) {
	for _, o := range d.Options {
		if o.ID == fragranceID {
			return o, true
		}
	}
	return FragranceOption{}, false
}

// AddLine adds amount ml of the fragrance. A fragrance that is already part
// of the draft gets the amount added to its line instead of a second line.
func (d *Draft) AddLine(option FragranceOption, amount float64) error {
	if d.State != StateEditing {
		return ErrNotEditing
	}
	if option.ID == 0 {
		return ErrUnknownFragrance
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}

	d.Message = ""
	for i := range d.Lines {
		if d.Lines[i].FragranceID == option.ID {
			d.Lines[i].Amount += amount
			return nil
		}
	}
	d.Lines = append(d.Lines, Line{
		FragranceID:   option.ID,
		FragranceName: option.Name,
		Amount:        amount,
	})
	return nil
}

// RemoveLine drops the line at index.
func (d *Draft) RemoveLine(index int) error {
	if d.State != StateEditing {
		return ErrNotEditing
	}
	if index < 0 || index >= len(d.Lines) {
		return ErrLineOutOfRange
	}
	d.Lines = append(d.Lines[:index], d.Lines[index+1:]...)
	d.Message = ""
	return nil
}

func (d *Draft) Total() float64 {
	var total float64
	for _, line := range d.Lines {
		total += line.Amount
	}
	return total
}

// Validate reports why the draft cannot be submitted yet.
func (d *Draft) Validate() error {
	if len(d.Lines) == 0 {
		return ErrNoLines
	}
	if !models.ValidTotal(d.Total()) {
		return ErrInvalidTotal
	}
	return nil
}

// Submission builds the creation request for the current lines.
func (d *Draft) Submission() Submission {
	lines := make([]Line, len(d.Lines))
	copy(lines, d.Lines)
	return Submission{
		CustomerID:  d.CustomerID,
		Name:        strings.TrimSpace(d.Name),
		TotalAmount: d.Total(),
		Lines:       lines,
	}
}

// Submit validates the draft locally and, when it passes, sends exactly one
// creation request. A validation failure leaves the draft editable and never
// reaches the submitter.
func (d *Draft) Submit(ctx context.Context, submitter Submitter) error {
	if d.State != StateEditing {
		return ErrNotEditing
	}
	if err := d.Validate(); err != nil {
		d.Message = err.Error()
		return err
	}

	d.State = StateSubmitting
	d.Message = ""
	id, err := submitter.SubmitComposition(ctx, d.Submission())
	if err != nil {
		d.fail(SubmitFailedMessage)
		return fmt.Errorf("submit composition: %w", err)
	}

	d.State = StateSubmitted
	d.CreatedID = id
	return nil
}

// Dismiss clears a failed submission so the user can edit and retry.
func (d *Draft) Dismiss() {
	if d.State == StateError && d.Loaded {
		d.State = StateEditing
	}
	if d.State == StateEditing {
		d.Message = ""
	}
}

// Ready reports whether the submit action should be offered.
func (d *Draft) Ready() bool {
	return d.State == StateEditing && d.Validate() == nil
}
