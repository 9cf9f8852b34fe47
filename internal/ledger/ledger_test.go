package ledger

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/datesim/internal/scene"
)

func TestApplyOutcomeIsAdditive(t *testing.T) {
	tests := []struct {
		name    string
		prior   int
		outcome []scene.Outcome
		want    int
	}{
		{"repeated in one outcome", 0, []scene.Outcome{{Flag: "trust", Delta: 5}, {Flag: "trust", Delta: 3}}, 8},
		{"on top of prior value", 10, []scene.Outcome{{Flag: "trust", Delta: 5}, {Flag: "trust", Delta: 3}}, 18},
		{"negative delta", 2, []scene.Outcome{{Flag: "trust", Delta: -7}}, -5},
		{"empty outcome", 4, nil, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New()
			if tt.prior != 0 {
				l.ApplyOutcome([]scene.Outcome{{Flag: "trust", Delta: tt.prior}})
			}
			l.ApplyOutcome(tt.outcome)
			assert.Equal(t, tt.want, l.Value("trust"))
		})
	}
}

func TestValueDefaultsToZero(t *testing.T) {
	assert.Equal(t, 0, New().Value("never"))
}

func TestSnapshotKeepsFirstSeenOrder(t *testing.T) {
	l := New()
	l.ApplyOutcome([]scene.Outcome{{Flag: "b", Delta: 1}, {Flag: "a", Delta: 2}})
	l.ApplyOutcome([]scene.Outcome{{Flag: "b", Delta: 1}, {Flag: "c", Delta: 0}})

	snap := l.Snapshot()
	assert.Equal(t, []Flag{{"b", 2}, {"a", 2}, {"c", 0}}, snap.Flags)

	v, ok := snap.Flag("c")
	assert.True(t, ok)
	assert.Equal(t, 0, v)
	_, ok = snap.Flag("d")
	assert.False(t, ok)
}

func TestCollectMissionKeepsDuplicates(t *testing.T) {
	l := New()
	l.CollectMission(scene.MissionWater)
	l.CollectMission(scene.MissionOil)
	l.CollectMission(scene.MissionWater)

	assert.Equal(t, []scene.MissionKind{scene.MissionWater, scene.MissionOil, scene.MissionWater}, l.Missions())

	snap := l.Snapshot()
	assert.Equal(t, 2, snap.MissionCount(scene.MissionWater))
	assert.Equal(t, 1, snap.MissionCount(scene.MissionOil))
	assert.Equal(t, 0, snap.MissionCount(scene.MissionIron))
}

func TestSnapshotIsDetached(t *testing.T) {
	l := New()
	l.ApplyOutcome([]scene.Outcome{{Flag: "x", Delta: 1}})
	l.CollectMission(scene.MissionIron)

	snap := l.Snapshot()
	snap.Flags[0].Value = 100
	snap.Missions[0] = scene.MissionWater

	assert.Equal(t, 1, l.Value("x"))
	assert.Equal(t, []scene.MissionKind{scene.MissionIron}, l.Missions())
}

func TestRestore(t *testing.T) {
	src := New()
	src.ApplyOutcome([]scene.Outcome{{Flag: "favor", Delta: 3}, {Flag: "trust", Delta: -1}})
	src.CollectMission(scene.MissionExplore)

	data, err := json.Marshal(src.Snapshot())
	require.NoError(t, err)
	assert.JSONEq(t, `{"flags":[{"name":"favor","value":3},{"name":"trust","value":-1}],"missions":["explore"]}`, string(data))

	var snap Snapshot
	require.NoError(t, json.Unmarshal(data, &snap))

	dst := New()
	dst.ApplyOutcome([]scene.Outcome{{Flag: "stale", Delta: 9}})
	dst.Restore(snap)

	assert.Equal(t, src.Snapshot(), dst.Snapshot())
	assert.Equal(t, 0, dst.Value("stale"))
}

func TestEmpty(t *testing.T) {
	l := New()
	assert.True(t, l.Snapshot().Empty())

	l.CollectMission(scene.MissionWater)
	assert.False(t, l.Snapshot().Empty())
}
