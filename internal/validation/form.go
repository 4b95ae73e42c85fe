package validation

import (
	"context"
	"maps"
	"sort"
	"sync"
)

// Schema maps a field name to its ordered rule list.
type Schema map[string][]Rule

// Fields returns the schema's field names in sorted order.
func (s Schema) Fields() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Check runs the rules for name against value and returns the first message,
// or "" when every rule passes or the field has no rules. Rules after the
// first failure are not evaluated.
func (s Schema) Check(name string, value any) string {
	for _, rule := range s[name] {
		if msg := rule(value); msg != "" {
			return msg
		}
	}
	return ""
}

// Validate runs every schema field against values and returns the failing
// fields with their messages. An empty map means the values are valid.
func Validate(schema Schema, values map[string]any) map[string]string {
	errs := make(map[string]string)
	for name := range schema {
		if msg := schema.Check(name, values[name]); msg != "" {
			errs[name] = msg
		}
	}
	return errs
}

// SubmitResult reports the outcome of Form.SubmitForm.
type SubmitResult struct {
	Success bool
	// Errors holds the failing fields when validation stopped the submit.
	Errors map[string]string
	// Err holds the error returned by the submit callback.
	Err error
}

// SubmitFunc receives a snapshot of the form values once they validate.
type SubmitFunc func(ctx context.Context, values map[string]any) error

// Form holds the state of one form: values, per-field errors, touched flags
// and whether a submit is in progress. Methods are safe for concurrent use
// and observe each other in call order.
type Form struct {
	schema  Schema
	initial map[string]any

	mu         sync.Mutex
	values     map[string]any
	errors     map[string]string
	touched    map[string]bool
	submitting bool
}

// NewForm creates a form over schema starting from initial values.
func NewForm(schema Schema, initial map[string]any) *Form {
	f := &Form{
		schema:  schema,
		initial: maps.Clone(initial),
	}
	f.reset(initial)
	return f
}

// ValidateField returns the first failing message for name and value.
// It does not change form state.
func (f *Form) ValidateField(name string, value any) string {
	return f.schema.Check(name, value)
}

// ValidateForm validates every schema field against the current values,
// replaces the error map and reports whether the form is valid.
func (f *Form) ValidateForm() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validateLocked()
}

func (f *Form) validateLocked() bool {
	f.errors = Validate(f.schema, f.values)
	return len(f.errors) == 0
}

// SetValue stores a value and clears any error shown for that field.
// The field is re-validated on blur or submit, not here.
func (f *Form) SetValue(name string, value any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[name] = value
	delete(f.errors, name)
}

// SetTouched sets the touched flag of a field.
func (f *Form) SetTouched(name string, touched bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touched[name] = touched
}

// HandleBlur marks the field touched and re-validates value, updating the
// stored error only when it changed.
func (f *Form) HandleBlur(name string, value any) {
	msg := f.schema.Check(name, value)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.touched[name] = true
	if f.errors[name] == msg {
		return
	}
	if msg == "" {
		delete(f.errors, name)
	} else {
		f.errors[name] = msg
	}
}

// ResetForm replaces the values wholesale and clears errors, touched flags
// and the submitting flag. A nil map restores the initial values.
func (f *Form) ResetForm(values map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if values == nil {
		values = f.initial
	}
	f.reset(values)
}

func (f *Form) reset(values map[string]any) {
	f.values = maps.Clone(values)
	if f.values == nil {
		f.values = make(map[string]any)
	}
	f.errors = make(map[string]string)
	f.touched = make(map[string]bool)
	f.submitting = false
}

// SubmitForm marks every schema field touched and validates the form. When
// validation fails it returns the failing fields and onSubmit is not called.
// Otherwise onSubmit runs with a snapshot of the values, outside the form
// lock. The submitting flag is cleared on every exit path.
//
// Overlapping submits are not prevented; callers keep a single submit
// in flight by checking IsSubmitting.
func (f *Form) SubmitForm(ctx context.Context, onSubmit SubmitFunc) SubmitResult {
	f.mu.Lock()
	f.submitting = true
	for name := range f.schema {
		f.touched[name] = true
	}
	valid := f.validateLocked()
	errs := maps.Clone(f.errors)
	snapshot := maps.Clone(f.values)
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.submitting = false
		f.mu.Unlock()
	}()

	if !valid {
		return SubmitResult{Success: false, Errors: errs}
	}
	if err := onSubmit(ctx, snapshot); err != nil {
		return SubmitResult{Success: false, Err: err}
	}
	return SubmitResult{Success: true}
}

// Values returns a copy of the current values.
func (f *Form) Values() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return maps.Clone(f.values)
}

// Errors returns a copy of the current error map.
func (f *Form) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return maps.Clone(f.errors)
}

// Touched returns a copy of the touched flags.
func (f *Form) Touched() map[string]bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return maps.Clone(f.touched)
}

// IsSubmitting reports whether a submit is in progress.
func (f *Form) IsSubmitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// IsValid reports whether the error map holds no messages.
func (f *Form) IsValid() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.errors) == 0
}
