// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/staranto/deckctl/internal/attrs"
)

const drawn = `{
  "deck_id": "abc123",
  "remaining": 49,
  "cards": [
    {"code": "KH", "value": "KING", "suit": "HEARTS", "image": "https://x.test/KH.png"},
    {"code": "0S", "value": "10", "suit": "SPADES", "image": "https://x.test/0S.png"},
    {"code": "AH", "value": "ACE", "suit": "HEARTS", "image": "https://x.test/AH.png"}
  ]
}`

func cardAttrs(t *testing.T, spec string) attrs.AttrList {
	t.Helper()
	var al attrs.AttrList
	require.NoError(t, al.Set("code,value,suit"))
	require.NoError(t, al.Set(spec))
	al.SetGlobalTransformSpec()
	return al
}

func TestSortDataset(t *testing.T) {
	testData := []map[string]interface{}{
		{"name": "zebra", "count": 3.0, "suit": "Hearts"},
		{"name": "alpha", "count": 1.0, "suit": "clubs"},
		{"name": "Beta", "count": 2.0, "suit": "hearts"},
	}

	tests := []struct {
		name      string
		spec      string
		wantOrder []string
	}{
		{name: "ascending by name", spec: "name", wantOrder: []string{"alpha", "Beta", "zebra"}},
		{name: "descending by name", spec: "-name", wantOrder: []string{"zebra", "Beta", "alpha"}},
		{name: "ascending by count", spec: "count", wantOrder: []string{"alpha", "Beta", "zebra"}},
		{name: "descending by count", spec: "-count", wantOrder: []string{"zebra", "Beta", "alpha"}},
		{name: "case sensitive", spec: "!name", wantOrder: []string{"Beta", "alpha", "zebra"}},
		{name: "multiple fields", spec: "suit,-count", wantOrder: []string{"alpha", "zebra", "Beta"}},
		{name: "stable on ties", spec: "suit", wantOrder: []string{"alpha", "zebra", "Beta"}},
		{name: "empty spec", spec: "", wantOrder: []string{"zebra", "alpha", "Beta"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]map[string]interface{}, len(testData))
			copy(data, testData)
			SortDataset(data, tt.spec)
			for i, expectedName := range tt.wantOrder {
				assert.Equal(t, expectedName, data[i]["name"], "at index %d", i)
			}
		})
	}
}

func TestSortDataset_MissingKeySortsFirst(t *testing.T) {
	data := []map[string]interface{}{
		{"name": "b", "rank": 2.0},
		{"name": "a"},
	}
	SortDataset(data, "rank")
	assert.Equal(t, "a", data[0]["name"])
}

func TestBuildFilters(t *testing.T) {
	tests := []struct {
		spec string
		want []Filter
	}{
		{"", nil},
		{"suit=HEARTS", []Filter{{Key: "suit", Operand: "=", Target: "HEARTS"}}},
		{"suit!=HEARTS", []Filter{{Key: "suit", Negate: true, Operand: "=", Target: "HEARTS"}}},
		{"code^K,value~king", []Filter{
			{Key: "code", Operand: "^", Target: "K"},
			{Key: "value", Operand: "~", Target: "king"},
		}},
		{"image/\\.png$", []Filter{{Key: "image", Operand: "/", Target: "\\.png$"}}},
		{"nooperand", nil},
		{"=HEARTS", nil},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildFilters(tt.spec))
		})
	}
}

func TestBuildFilters_Delimiter(t *testing.T) {
	t.Setenv("DECKCTL_FILTER_DELIM", ";")
	got := BuildFilters("value@1,0;suit=SPADES")
	require.Len(t, got, 2)
	assert.Equal(t, "1,0", got[0].Target)
}

func TestFilterDataset(t *testing.T) {
	cards := gjson.Get(drawn, "cards")

	tests := []struct {
		name  string
		spec  string
		codes []string
	}{
		{"no filter", "", []string{"KH", "0S", "AH"}},
		{"equals", "suit=HEARTS", []string{"KH", "AH"}},
		{"not equals", "suit!=HEARTS", []string{"0S"}},
		{"fold", "value~king", []string{"KH"}},
		{"prefix", "code^A", []string{"AH"}},
		{"contains", "value@C", []string{"AH"}},
		{"regex", "code/^[0-9]", []string{"0S"}},
		{"negated regex", "code!/^[0-9]", []string{"KH", "AH"}},
		{"path not in attrs", "image@KH", []string{"KH"}},
		{"and", "suit=HEARTS,code^K", []string{"KH"}},
		{"unknown key ignored", "nope=1", []string{"KH", "0S", "AH"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterDataset(cards, cardAttrs(t, ""), tt.spec)
			var codes []string
			for _, row := range got {
				codes = append(codes, row["code"].(string))
			}
			assert.Equal(t, tt.codes, codes)
		})
	}
}

func TestFilterDataset_SingleObject(t *testing.T) {
	var al attrs.AttrList
	require.NoError(t, al.Set("deck_id,remaining"))

	got := FilterDataset(gjson.Parse(`{"deck_id":"abc123","shuffled":true,"remaining":52}`), al, "")

	require.Len(t, got, 1)
	assert.Equal(t, "abc123", got[0]["deck_id"])
	assert.Equal(t, 52.0, got[0]["remaining"])
	assert.NotContains(t, got[0], "shuffled")
}

func TestSliceDiceSpit(t *testing.T) {
	tests := []struct {
		name  string
		spec  string
		opts  Options
		check func(t *testing.T, out string)
	}{
		{
			name: "json",
			opts: Options{Format: "json", Sort: "code"},
			check: func(t *testing.T, out string) {
				assert.JSONEq(t, `[
					{"code":"0S","value":"10","suit":"SPADES"},
					{"code":"AH","value":"ACE","suit":"HEARTS"},
					{"code":"KH","value":"KING","suit":"HEARTS"}
				]`, out)
			},
		},
		{
			name: "json empty",
			opts: Options{Format: "json", Filter: "suit=CLUBS"},
			check: func(t *testing.T, out string) {
				assert.Equal(t, "[]\n", out)
			},
		},
		{
			name: "yaml",
			opts: Options{Format: "yaml", Filter: "code=KH"},
			check: func(t *testing.T, out string) {
				assert.Equal(t, "- code: KH\n  suit: HEARTS\n  value: KING\n", out)
			},
		},
		{
			name: "raw ignores everything",
			opts: Options{Format: "raw", Filter: "code=KH"},
			check: func(t *testing.T, out string) {
				assert.Equal(t, drawn+"\n", out)
			},
		},
		{
			name: "transforms",
			spec: "suit::l,!value",
			opts: Options{Format: "json", Filter: "code=AH"},
			check: func(t *testing.T, out string) {
				assert.JSONEq(t, `[{"code":"AH","value":"ACE","suit":"hearts"}]`, out)
			},
		},
		{
			name: "text with titles",
			spec: "!value",
			opts: Options{Format: "text", Titles: true, Sort: "-code"},
			check: func(t *testing.T, out string) {
				lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
				require.Len(t, lines, 4)
				assert.Equal(t, []string{"code", "suit"}, strings.Fields(lines[0]))
				assert.Equal(t, []string{"KH", "HEARTS"}, strings.Fields(lines[1]))
				assert.Equal(t, []string{"AH", "HEARTS"}, strings.Fields(lines[2]))
				assert.Equal(t, []string{"0S", "SPADES"}, strings.Fields(lines[3]))
			},
		},
		{
			name: "text without rows prints nothing",
			opts: Options{Format: "text", Filter: "suit=CLUBS"},
			check: func(t *testing.T, out string) {
				assert.Empty(t, out)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			parent := "cards"
			err := SliceDiceSpit([]byte(drawn), cardAttrs(t, tt.spec), tt.opts, parent, &buf)
			require.NoError(t, err)
			tt.check(t, buf.String())
		})
	}
}

func TestDump(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, []byte(`{"deck_id":"abc123","remaining":52}`)))
	assert.Equal(t, "{\n  \"deck_id\": \"abc123\",\n  \"remaining\": 52\n}\n", buf.String())

	buf.Reset()
	require.NoError(t, Dump(&buf, []byte("<html>")))
	assert.Equal(t, "<html>\n", buf.String())
}

func TestInterfaceToString(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		emptyVal string
		want     string
	}{
		{name: "string", value: "hello", want: "hello"},
		{name: "empty string custom", value: "", emptyVal: "-", want: "-"},
		{name: "int", value: 42, want: "42"},
		{name: "whole float64", value: 52.0, want: "52"},
		{name: "float64 with decimal", value: 42.5, want: "42.5"},
		{name: "zero float64", value: 0.0, want: "0"},
		{name: "bool true", value: true, want: "true"},
		{name: "bool false", value: false, want: "false"},
		{name: "nil default", value: nil, want: ""},
		{name: "nil custom", value: nil, emptyVal: "-", want: "-"},
		{name: "slice", value: []string{"a", "b"}, want: `["a","b"]`},
		{name: "map", value: map[string]int{"x": 1}, want: `{"x":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			if tt.emptyVal != "" {
				got = InterfaceToString(tt.value, tt.emptyVal)
			} else {
				got = InterfaceToString(tt.value)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetColors(t *testing.T) {
	t.Setenv("DECKCTL_CFG", "/nonexistent/deckctl.yaml")
	header, even, odd := getColors("colors")

	assert.Equal(t, "#f6be00", header)
	assert.Equal(t, "#ffffff", even)
	assert.Equal(t, "#00c8f0", odd)
}

func BenchmarkSortDataset(b *testing.B) {
	testData := []map[string]interface{}{
		{"name": "zebra", "count": 3.0},
		{"name": "alpha", "count": 1.0},
		{"name": "beta", "count": 2.0},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		data := make([]map[string]interface{}, len(testData))
		copy(data, testData)
		SortDataset(data, "name")
	}
}
