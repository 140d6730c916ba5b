// Package action defines the unit of build work: the Action contract,
// its execution result, and the concrete variants. An action declares
// its inputs and outputs at construction, derives a stable key for
// cache deduplication, and performs its effect only when executed with
// an execution context. Actions are immutable after construction and
// safe to execute concurrently as long as no two actions share an
// output path, which is the caller's scheduling invariant.
package action
