package core

// merge.go declares the reconciliation policy applied when a reference
// entity from an incoming row already exists in the database. The
// policy is a declarative table rather than conditionals scattered
// through the importer, so a future change to one field's rule is a
// one-line edit here.

// MergeRule says how a stored field reconciles against later rows.
type MergeRule int

const (
	// KeepExisting never touches the stored value after creation.
	KeepExisting MergeRule = iota

	// AlwaysOverwrite replaces the stored value with the latest row's.
	AlwaysOverwrite

	// OverwriteIfUnset replaces the stored value only while it is
	// still null or zero.
	OverwriteIfUnset
)

// MergePolicy lists the rule for every reference-entity field that can
// change after creation. Fields not listed are written once on first
// sight and never revisited.
var MergePolicy = struct {
	// CustomerSegment keeps a customer's segment in sync with the
	// latest row seen for that customer.
	CustomerSegment MergeRule

	// CustomerName stays as imported on first sight.
	CustomerName MergeRule

	// ProductCost is backfilled from the first row that supplies a
	// non-zero purchase cost.
	ProductCost MergeRule

	// ProductGroup is refreshed together with the cost backfill and
	// only then.
	ProductGroup MergeRule
}{
	CustomerSegment: AlwaysOverwrite,
	CustomerName:    KeepExisting,
	ProductCost:     OverwriteIfUnset,
	ProductGroup:    OverwriteIfUnset,
}
