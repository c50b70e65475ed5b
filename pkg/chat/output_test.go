package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetadataAccessors(t *testing.T) {
	md := &Metadata{ToolUsed: "list_devices"}

	for _, m := range []Message{&Text{}, &Cards{}, &Form{}} {
		assert.True(t, IsPrimary(m))
		assert.True(t, SetMetadata(m, md))
		assert.Same(t, md, MetadataOf(m))
	}

	for _, m := range []Message{&Typing{Active: true}, &Error{Code: 401}} {
		assert.False(t, IsPrimary(m))
		assert.False(t, SetMetadata(m, md))
		assert.Nil(t, MetadataOf(m))
	}
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "hi", Summary(&Text{Content: "hi"}))
	assert.Equal(t, "📱 All Devices", Summary(&Cards{Content: "📱 All Devices"}))
	assert.Equal(t, "Add\nmissing", Summary(&Form{Title: "Add", Notice: "missing"}))
	assert.Equal(t, "", Summary(&Typing{}))
}
