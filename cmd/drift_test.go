package main

import (
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	circuit "rtcircuit"
	"rtcircuit/load"
	"rtcircuit/types"
)

func TestDriftRange(t *testing.T) {
	d := NewDrift(7)
	for i := 0; i < 200; i++ {
		f := d.Factor(3, float64(i)*0.05)
		assert.GreaterOrEqual(t, f, 0.0)
		assert.LessOrEqual(t, f, 1.0)
	}
	assert.Equal(t, d.Factor(3, 1.25), NewDrift(7).Factor(3, 1.25))
}

func TestDemoScene(t *testing.T) {
	cfg := circuit.DefaultConfig()
	cfg.Logger = log.New(io.Discard, "", 0)
	cir, err := circuit.New(cfg)
	require.NoError(t, err)
	scene, err := load.LoadString(demo)
	require.NoError(t, err)
	require.NoError(t, load.Apply(cir, scene))

	d := NewDrift(1)
	var st types.State
	for i := 0; i < 30; i++ {
		require.NoError(t, d.Apply(cir))
		st = cir.Frame()
	}
	assert.Equal(t, types.Running, st.RunState)
	assert.Equal(t, 1, cir.Resolves())
	assert.Greater(t, st.TotalCurrent, 0.0)
	assert.Less(t, st.TotalCurrent, types.TripCurrent)
	ldr, _ := cir.Component(3)
	assert.InDelta(t, d.Factor(3, st.Time-10*types.TimeStep), ldr.ExternalFactor, 1e-6)
}
