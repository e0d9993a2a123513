package impl

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ca-srg/tzcore/infrastructure/logging"
)

func TestAbbreviationRegistry_SeededFromDatabase(t *testing.T) {
	registry := NewAbbreviationRegistry(newFakeZoneDatabase("UTC"), &logging.NoOpLogger{})

	name, ok := registry.Lookup("JST")
	assert.True(t, ok)
	assert.Equal(t, "Asia/Tokyo", name)

	_, ok = registry.Lookup("XYZ")
	assert.False(t, ok)

	assert.Len(t, registry.Snapshot(), 3)
}

func TestAbbreviationRegistry_Replace(t *testing.T) {
	ctx := context.Background()
	registry := NewAbbreviationRegistry(newFakeZoneDatabase("UTC"), &logging.NoOpLogger{})

	t.Run("total overwrite", func(t *testing.T) {
		registry.Replace(ctx, map[string]string{"AAA": "Asia/Tokyo"})
		_, ok := registry.Lookup("JST")
		assert.False(t, ok)
		assert.Equal(t, map[string]string{"AAA": "Asia/Tokyo"}, registry.Snapshot())
	})

	t.Run("last writer wins", func(t *testing.T) {
		registry.Replace(ctx, map[string]string{"AAA": "Europe/Paris"})
		registry.Replace(ctx, map[string]string{"AAA": "America/New_York"})
		name, ok := registry.Lookup("AAA")
		assert.True(t, ok)
		assert.Equal(t, "America/New_York", name)
	})

	t.Run("input and snapshot are copies", func(t *testing.T) {
		input := map[string]string{"BBB": "Asia/Tokyo"}
		registry.Replace(ctx, input)
		input["BBB"] = "Europe/Paris"

		snapshot := registry.Snapshot()
		snapshot["BBB"] = "America/New_York"

		name, _ := registry.Lookup("BBB")
		assert.Equal(t, "Asia/Tokyo", name)
	})

	t.Run("reset restores database table", func(t *testing.T) {
		registry.ResetToDefault(ctx)
		name, ok := registry.Lookup("EST")
		assert.True(t, ok)
		assert.Equal(t, "America/New_York", name)
		_, ok = registry.Lookup("BBB")
		assert.False(t, ok)
	})
}

func TestAbbreviationRegistry_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	registry := NewAbbreviationRegistry(newFakeZoneDatabase("UTC"), &logging.NoOpLogger{})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				registry.Replace(ctx, map[string]string{"EST": "America/New_York", "X": "UTC"})
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				// Either mapping may be observed; both contain EST.
				name, ok := registry.Lookup("EST")
				assert.True(t, ok)
				assert.Equal(t, "America/New_York", name)
				_ = registry.Snapshot()
			}
		}()
	}
	wg.Wait()
}
