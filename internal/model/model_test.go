package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJobStartsQueued(t *testing.T) {
	job := NewJob("job1", "file1", "notes.md", time.Unix(0, 0))

	assert.Equal(t, JobQueued, job.Status)
	assert.Equal(t, StageContentAnalysis, job.CurrentStage)
	assert.Equal(t, 0, job.Progress)
	for _, s := range Stages {
		assert.Equal(t, StagePending, job.StageProgress[s])
	}
}

func TestCloneIsDeep(t *testing.T) {
	job := NewJob("job1", "file1", "notes.md", time.Now())
	now := time.Now()
	job.CompletedAt = &now

	c := job.Clone()
	c.StageProgress[StageContentAnalysis] = StageCompleted
	*c.CompletedAt = now.Add(time.Hour)

	assert.Equal(t, StagePending, job.StageProgress[StageContentAnalysis])
	assert.Equal(t, now, *job.CompletedAt)
}

func TestProgressFollowsCompletedStages(t *testing.T) {
	job := NewJob("job1", "", "", time.Now())
	want := []int{25, 50, 75, 100}
	for i, s := range Stages {
		job.StageProgress[s] = StageCompleted
		job.RecomputeProgress()
		assert.Equal(t, want[i], job.Progress)
	}
}

func TestBlockContentDecodesByShape(t *testing.T) {
	cases := []struct {
		name string
		json string
		kind ContentKind
	}{
		{"text", `"hello"`, KindText},
		{"list", `["a", "b"]`, KindList},
		{"bullets", `{"items": ["a"], "level": 1}`, KindBullets},
		{"table", `{"headers": ["h"], "rows": [["1"]]}`, KindTable},
		{"chart", `{"type": "bar", "labels": ["q1"], "datasets": [{"name": "s", "values": [1]}]}`, KindChart},
		{"null", `null`, KindNone},
		{"number", `42`, KindText},
		{"unknown object", `{"foo": 1}`, KindNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var c BlockContent
			require.NoError(t, json.Unmarshal([]byte(tc.json), &c))
			assert.Equal(t, tc.kind, c.Kind)
		})
	}
}

func TestBlockContentToleratesBadChartValues(t *testing.T) {
	var c BlockContent
	require.NoError(t, json.Unmarshal([]byte(`{"type":"pie","labels":["a",2],"datasets":[{"name":"x","values":["n/a"]}]}`), &c))

	require.Equal(t, KindChart, c.Kind)
	assert.Equal(t, []string{"a", "2"}, c.Chart.Labels)
	assert.False(t, c.Chart.Valid())
}

func TestContentBlockKeepsWireShape(t *testing.T) {
	block := ContentBlock{ID: "block_1", Type: BlockBullets, Content: BulletsContent([]string{"x"}), Position: PositionMain}

	data, err := json.Marshal(block)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"block_1","type":"bullets","content":{"items":["x"]},"position":"main"}`, string(data))
}

func TestSlideTypeDecorative(t *testing.T) {
	assert.True(t, SlideTitle.Decorative())
	assert.True(t, SlideThankYou.Decorative())
	assert.False(t, SlideContent.Decorative())
	assert.False(t, SlideType("banner").Valid())
}
