package engine

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"
)

func TestBolt(t *testing.T) {
	b, _ := makeBolt(t)
	defer b.Close()

	_, ok := b.Find("a")
	assert.False(t, ok)
	require.NoError(t, b.Delete("a"))

	s := sampleSession("a", base)
	require.NoError(t, b.Put(s))

	got, ok := b.Find("a")
	require.True(t, ok)
	assert.Equal(t, s, *got)
	assert.Equal(t, 1, b.Len())

	require.NoError(t, b.Delete("a"))
	_, ok = b.Find("a")
	assert.False(t, ok)
}

func TestBolt_DeleteOlder(t *testing.T) {
	b, _ := makeBolt(t)
	defer b.Close()

	for i, id := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, b.Put(sampleSession(id, base.Add(time.Duration(i)*time.Hour))))
	}

	// Broken records are skipped.
	err := b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(sessionBucket)).Put([]byte("bad"), []byte("{"))
	})
	require.NoError(t, err)

	n, err := b.DeleteOlder(base.Add(150 * time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 3, b.Len())

	for _, id := range []string{"a", "b", "c"} {
		_, ok := b.Find(id)
		assert.False(t, ok, id)
	}
	for _, id := range []string{"d", "e"} {
		_, ok := b.Find(id)
		assert.True(t, ok, id)
	}
	_, ok := b.Find("bad")
	assert.False(t, ok)
}

func TestBolt_backup(t *testing.T) {
	b, dir := makeBolt(t)

	s := sampleSession("a", base)
	require.NoError(t, b.Put(s))

	f, err := os.Create(dir + "/backup.bolt")
	require.NoError(t, err)

	err = b.Backup(f)
	require.NoError(t, err)

	err = f.Close()
	require.NoError(t, err)
	err = b.Close()
	require.NoError(t, err)

	b, err = NewBolt(dir + "/backup.bolt")
	require.NoError(t, err)
	defer b.Close()

	got, ok := b.Find("a")
	assert.True(t, ok)
	assert.Equal(t, s, *got)
}

func makeBolt(t *testing.T) (b *Bolt, dir string) {
	dir = t.TempDir()
	b, err := NewBolt(dir + "/db.bolt")
	require.NoError(t, err)
	return b, dir
}
