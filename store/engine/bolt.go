package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/nvkalinin/datepicker/log"
	"github.com/nvkalinin/datepicker/store"
	"go.etcd.io/bbolt"
)

const sessionBucket = "sessions"

// Bolt keeps every session as one JSON value under its ID in sessionBucket.
type Bolt struct {
	db *bbolt.DB
}

func NewBolt(file string) (*Bolt, error) {
	b, err := bbolt.Open(file, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("cannot open bolt store: %w", err)
	}
	log.Printf("[DEBUG] store/bolt opened %s successfully", file)

	return &Bolt{
		db: b,
	}, nil
}

func (b *Bolt) Close() error {
	if err := b.db.Close(); err != nil {
		return fmt.Errorf("cannot close bolt store: %w", err)
	}
	log.Printf("[DEBUG] store/bolt closed successfully")
	return nil
}

func (b *Bolt) Find(id string) (s *store.Session, ok bool) {
	_ = b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(sessionBucket))
		if bucket == nil {
			return nil
		}

		val := bucket.Get([]byte(id))
		log.Printf("[DEBUG] store/bolt get key=%s len=%d", id, len(val))
		if val == nil {
			return nil
		}

		var sess store.Session
		if err := json.Unmarshal(val, &sess); err != nil {
			log.Printf("[WARN] bolt: invalid session at %s: %v", id, err)
			return nil
		}

		s, ok = &sess, true
		return nil
	})
	return
}

func (b *Bolt) Put(s store.Session) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(sessionBucket))
		if err != nil {
			return fmt.Errorf("bolt cannot create bucket '%s': %v", sessionBucket, err)
		}

		val, err := json.Marshal(s)
		if err != nil {
			return fmt.Errorf("bolt cannot marshal %s: %v", s.ID, err)
		}

		log.Printf("[DEBUG] store/bolt put key=%s len=%d", s.ID, len(val))
		if err := bucket.Put([]byte(s.ID), val); err != nil {
			return fmt.Errorf("bolt cannot put %s: %v", s.ID, err)
		}
		return nil
	})
}

func (b *Bolt) Delete(id string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(sessionBucket))
		if bucket == nil {
			return nil
		}
		log.Printf("[DEBUG] store/bolt delete key=%s", id)
		return bucket.Delete([]byte(id))
	})
}

// DeleteOlder removes the sessions updated before t. Records that cannot be decoded are kept.
func (b *Bolt) DeleteOlder(t time.Time) (n int, err error) {
	err = b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(sessionBucket))
		if bucket == nil {
			return nil
		}

		// Deleting under a live cursor skips keys, so collect them first.
		var expired [][]byte
		err := bucket.ForEach(func(k, v []byte) error {
			var meta struct {
				Updated time.Time `json:"updated"`
			}
			if err := json.Unmarshal(v, &meta); err != nil {
				log.Printf("[WARN] bolt: invalid session at %s: %v", k, err)
				return nil
			}
			if meta.Updated.Before(t) {
				expired = append(expired, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}

		for _, k := range expired {
			log.Printf("[DEBUG] store/bolt expire key=%s", k)
			if err := bucket.Delete(k); err != nil {
				return fmt.Errorf("bolt cannot delete %s: %v", k, err)
			}
		}
		n = len(expired)
		return nil
	})
	return n, err
}

func (b *Bolt) Len() (n int) {
	_ = b.db.View(func(tx *bbolt.Tx) error {
		if bucket := tx.Bucket([]byte(sessionBucket)); bucket != nil {
			n = bucket.Stats().KeyN
		}
		return nil
	})
	return
}

func (b *Bolt) Backup(w io.Writer) error {
	return b.db.View(func(tx *bbolt.Tx) error {
		log.Printf("[DEBUG] store/bolt writing backup len=%d", tx.Size())
		_, err := tx.WriteTo(w)
		return err
	})
}
