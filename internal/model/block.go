package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

type ContentKind string

const (
	KindNone    ContentKind = ""
	KindText    ContentKind = "text"
	KindList    ContentKind = "list"
	KindBullets ContentKind = "bullets"
	KindTable   ContentKind = "table"
	KindChart   ContentKind = "chart"
)

type BulletContent struct {
	Items []string `json:"items"`
	Level int      `json:"level,omitempty"`
}

type TableContent struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Valid reports whether the table has something to render.
func (t *TableContent) Valid() bool {
	return t != nil && len(t.Headers) > 0
}

type ChartType string

const (
	ChartBar      ChartType = "bar"
	ChartLine     ChartType = "line"
	ChartPie      ChartType = "pie"
	ChartDoughnut ChartType = "doughnut"
	ChartArea     ChartType = "area"
)

type ChartDataset struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

type ChartContent struct {
	Type     ChartType      `json:"type"`
	Title    string         `json:"title,omitempty"`
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

// Valid reports whether the chart has labels and at least one non-empty
// series.
func (c *ChartContent) Valid() bool {
	if c == nil || len(c.Labels) == 0 || len(c.Datasets) == 0 {
		return false
	}
	for _, ds := range c.Datasets {
		if len(ds.Values) == 0 {
			return false
		}
	}
	return true
}

// BlockContent is the payload of a content block. Kind selects which of the
// fields is meaningful. On the wire it has the bare shape of the active
// variant: a string, an array of strings, or one of the objects.
type BlockContent struct {
	Kind    ContentKind
	Text    string
	Items   []string
	Bullets *BulletContent
	Table   *TableContent
	Chart   *ChartContent
}

func TextContent(s string) BlockContent { return BlockContent{Kind: KindText, Text: s} }

func ListContent(items []string) BlockContent { return BlockContent{Kind: KindList, Items: items} }

func BulletsContent(items []string) BlockContent {
	return BlockContent{Kind: KindBullets, Bullets: &BulletContent{Items: items}}
}

func TableBlock(t TableContent) BlockContent { return BlockContent{Kind: KindTable, Table: &t} }

func ChartBlock(c ChartContent) BlockContent { return BlockContent{Kind: KindChart, Chart: &c} }

// Strings returns the payload as display lines: the text as one line, list
// and bullet items as they are, nothing for tables and charts.
func (c BlockContent) Strings() []string {
	switch c.Kind {
	case KindText:
		if c.Text == "" {
			return nil
		}
		return []string{c.Text}
	case KindList:
		return c.Items
	case KindBullets:
		if c.Bullets != nil {
			return c.Bullets.Items
		}
	}
	return nil
}

func (c BlockContent) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case KindText:
		return json.Marshal(c.Text)
	case KindList:
		if c.Items == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(c.Items)
	case KindBullets:
		return json.Marshal(c.Bullets)
	case KindTable:
		return json.Marshal(c.Table)
	case KindChart:
		return json.Marshal(c.Chart)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes by shape. It never fails on odd but well-formed
// JSON: scalars become text, mixed arrays are stringified and objects that
// match no variant leave the content empty.
func (c *BlockContent) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*c = BlockContent{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = TextContent(s)
	case '[':
		var raw []any
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		*c = ListContent(stringify(raw))
	case '{':
		return c.decodeObject(data)
	default:
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*c = TextContent(fmt.Sprint(v))
	}
	return nil
}

func (c *BlockContent) decodeObject(data []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	_, hasLabels := probe["labels"]
	_, hasDatasets := probe["datasets"]
	_, hasHeaders := probe["headers"]
	_, hasRows := probe["rows"]
	_, hasItems := probe["items"]

	switch {
	case hasLabels || hasDatasets:
		var raw struct {
			Type     string `json:"type"`
			Title    string `json:"title"`
			Labels   []any  `json:"labels"`
			Datasets []struct {
				Name   any   `json:"name"`
				Values []any `json:"values"`
			} `json:"datasets"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			// malformed chart payloads render as a placeholder
			*c = BlockContent{Kind: KindChart, Chart: &ChartContent{}}
			return nil
		}
		chart := &ChartContent{
			Type:   ChartType(raw.Type),
			Title:  raw.Title,
			Labels: stringify(raw.Labels),
		}
		for _, ds := range raw.Datasets {
			values, ok := numbers(ds.Values)
			if !ok {
				values = nil
			}
			name := ""
			if ds.Name != nil {
				name = fmt.Sprint(ds.Name)
			}
			chart.Datasets = append(chart.Datasets, ChartDataset{Name: name, Values: values})
		}
		*c = BlockContent{Kind: KindChart, Chart: chart}
	case hasHeaders || hasRows:
		var raw struct {
			Headers []any   `json:"headers"`
			Rows    [][]any `json:"rows"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			*c = BlockContent{Kind: KindTable, Table: &TableContent{}}
			return nil
		}
		table := &TableContent{Headers: stringify(raw.Headers)}
		for _, row := range raw.Rows {
			table.Rows = append(table.Rows, stringify(row))
		}
		*c = BlockContent{Kind: KindTable, Table: table}
	case hasItems:
		var raw struct {
			Items []any `json:"items"`
			Level int   `json:"level"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			*c = BlockContent{Kind: KindBullets, Bullets: &BulletContent{}}
			return nil
		}
		*c = BlockContent{Kind: KindBullets, Bullets: &BulletContent{Items: stringify(raw.Items), Level: raw.Level}}
	}
	return nil
}

func stringify(values []any) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		switch t := v.(type) {
		case nil:
			out = append(out, "")
		case string:
			out = append(out, t)
		case float64:
			out = append(out, strconv.FormatFloat(t, 'f', -1, 64))
		default:
			b, err := json.Marshal(t)
			if err != nil {
				out = append(out, fmt.Sprint(t))
				continue
			}
			out = append(out, string(b))
		}
	}
	return out
}

func numbers(values []any) ([]float64, bool) {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		switch t := v.(type) {
		case float64:
			out = append(out, t)
		case string:
			f, err := strconv.ParseFloat(t, 64)
			if err != nil {
				return nil, false
			}
			out = append(out, f)
		default:
			return nil, false
		}
	}
	return out, true
}
