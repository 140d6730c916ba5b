// Package keys computes stable action fingerprints for cache
// deduplication. Keys are content digests of everything that defines an
// action's behavior: its mnemonic, its declared input and output paths,
// and every action-specific parameter. Omitting a field here would
// corrupt cache correctness, so action variants must route all of their
// parameters through ActionKey.
package keys

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/masonbuild/mason/pkg/artifact"
	"github.com/masonbuild/mason/pkg/errors"
)

// Context computes action keys. A single Context is shared across all
// actions of a build; it is stateless and safe for concurrent use.
type Context struct{}

// New returns a key context.
func New() *Context {
	return &Context{}
}

// actionPreimage is the structure digested into an action key.
type actionPreimage struct {
	Inputs  []string `json:",omitempty"`
	Outputs []string `json:",omitempty"`
	Params  []string `json:",omitempty"`
}

// ActionKey returns the fingerprint of an action given its mnemonic,
// declared inputs and outputs, and any variant-specific parameters in a
// fixed order. The result is stable across process runs and
// serialization round-trips.
func (c *Context) ActionKey(mnemonic string, inputs, outputs []artifact.Artifact, params []string) (string, error) {
	pre := actionPreimage{
		Inputs:  execPaths(inputs),
		Outputs: execPaths(outputs),
		Params:  params,
	}

	buf := new(bytes.Buffer)
	fmt.Fprintln(buf, mnemonic)
	bs, err := json.Marshal(pre)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "marshal action key preimage")
	}
	buf.Write(bs)
	sum := sha256.Sum256(buf.Bytes())
	return "sha256:" + hex.EncodeToString(sum[:]), nil
}

// ContentDigest returns the fingerprint of raw content, used for
// parameters that are byte blobs rather than paths.
func (c *Context) ContentDigest(content []byte) string {
	sum := sha256.Sum256(content)
	return "sha256:" + hex.EncodeToString(sum[:])
}

func execPaths(artifacts []artifact.Artifact) []string {
	if len(artifacts) == 0 {
		return nil
	}
	paths := make([]string, len(artifacts))
	for i, a := range artifacts {
		paths[i] = a.ExecPath()
	}
	return paths
}
