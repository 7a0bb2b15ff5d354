package app

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

func TestGraphsResolve(t *testing.T) {
	for name, opts := range map[string]fx.Option{
		"http":   HTTP,
		"worker": Worker,
	} {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, fx.ValidateApp(opts))
		})
	}
}
