package action

// Owner identifies the configured target that created an action. The
// execution core never inspects it beyond equality; it exists so
// results and diagnostics can be attributed.
type Owner struct {
	Label         string
	Configuration string
}

// NullOwner is the owner of actions created outside any target, used
// mainly in tests.
var NullOwner = Owner{}
