package table

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	tbl := Table{
		Title:  " IoU thr: 0.5 IoF thr: 0.5 ",
		Header: []string{"class", "gts", "dets", "recall", "ap"},
		Rows: [][]string{
			{"cat", "1", "1", "1.000", "1.000"},
			{"dog", "0", "0", "0.000", "0.000"},
		},
		Footer: []string{"mAP", "", "", "", "1.000"},
	}

	out := tbl.Render()

	assert.True(t, strings.HasPrefix(out, tbl.Title+"\n"), "title goes on its own line")
	assert.Contains(t, out, "class")
	assert.Contains(t, out, "cat")
	assert.Contains(t, out, "mAP")
	assert.Contains(t, out, "1.000")
}

func TestRenderWithoutTitleOrFooter(t *testing.T) {
	tbl := Table{
		Header: []string{"a", "b"},
		Rows:   [][]string{{"1", "2"}},
	}

	out := tbl.Render()
	assert.False(t, strings.HasPrefix(out, "\n"))
	assert.Contains(t, out, "1")
	assert.NotContains(t, out, "mAP")
}
