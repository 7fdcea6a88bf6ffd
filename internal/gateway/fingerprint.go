package gateway

import (
	"fmt"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/modashop/catalog-gateway/internal/domain/model"
)

// Fingerprint computes a deterministic, order-independent digest of an
// endpoint and its parameter set. Two logically identical requests always
// fingerprint identically regardless of parameter insertion order.
func Fingerprint(endpoint model.Endpoint, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	digest := xxhash.New()
	_, _ = digest.WriteString(string(endpoint))

	for _, key := range keys {
		_, _ = digest.WriteString("\x00")
		_, _ = digest.WriteString(key)
		_, _ = digest.WriteString("=")
		_, _ = digest.WriteString(params[key])
	}

	return fmt.Sprintf("%s:%016x", endpoint, digest.Sum64())
}
