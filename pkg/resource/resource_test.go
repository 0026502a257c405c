package resource_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/offerdesk/pkg/resource"
)

type item struct {
	ID     int
	Name   string
	Secret string
}

var summary = resource.TransformerFunc[item](func(i item) resource.Map {
	return resource.Map{"id": i.ID, "name": i.Name}
})

func encode(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func TestToArrayPicksFields(t *testing.T) {
	out := summary.ToArray(item{ID: 1, Name: "Paint fence", Secret: "x"})
	assert.JSONEq(t, `{"id":1,"name":"Paint fence"}`, encode(t, out))
}

func TestCollectEmptyIsArray(t *testing.T) {
	assert.Equal(t, `[]`, encode(t, resource.Collect[item](summary, nil)))
}

func TestCollectKeepsOrder(t *testing.T) {
	out := resource.Collect[item](summary, []item{{ID: 2, Name: "b"}, {ID: 1, Name: "a"}})
	assert.JSONEq(t, `[{"id":2,"name":"b"},{"id":1,"name":"a"}]`, encode(t, out))
}
