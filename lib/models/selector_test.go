package models

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var available = map[string]string{
	"llama": "llama3.2:3b",
	"gemma": "gemma2:2b",
	"qwen":  "qwen2.5:3b",
}

func TestNewDefaultsToConfiguredModel(t *testing.T) {
	s, err := New(available, "llama")
	require.NoError(t, err)
	assert.Equal(t, "llama3.2:3b", s.Current())
}

func TestNewRejectsUnknownDefault(t *testing.T) {
	_, err := New(available, "mistral")
	assert.Error(t, err)
}

func TestSelect(t *testing.T) {
	s, err := New(available, "llama")
	require.NoError(t, err)

	assert.True(t, s.Select("gemma"))
	assert.Equal(t, "gemma2:2b", s.Current())
}

func TestSelectUnknownLeavesStateUnchanged(t *testing.T) {
	s, err := New(available, "llama")
	require.NoError(t, err)

	assert.False(t, s.Select("mistral"))
	assert.Equal(t, "llama3.2:3b", s.Current())
}

func TestAvailableReturnsCopy(t *testing.T) {
	s, err := New(available, "llama")
	require.NoError(t, err)

	models := s.Available()
	assert.Equal(t, available, models)

	models["mistral"] = "mistral:7b"
	assert.False(t, s.Select("mistral"))
}

func TestConcurrentSwitchAndRead(t *testing.T) {
	s, err := New(available, "llama")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Select("gemma")
			s.Select("llama")
		}()
		go func() {
			defer wg.Done()
			current := s.Current()
			assert.Contains(t, []string{"llama3.2:3b", "gemma2:2b"}, current)
		}()
	}
	wg.Wait()
}
