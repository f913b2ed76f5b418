package cmd

import (
	"compress/gzip"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/nvkalinin/datepicker/log"
	"github.com/nvkalinin/datepicker/store/engine"
)

type Backup struct {
	ServerUrl   string        `long:"server-url" short:"s" env:"SERVER_URL" default:"http://localhost" description:"URL of the date picker REST API."`
	AdminPasswd string        `long:"passwd" short:"p" env:"WEB_ADMIN_PASSWD" description:"Password of the admin user."`
	OutFile     string        `long:"out" short:"o" env:"OUT" description:"Where to save the backup. Default: sessions_YYYY-MM-DD.bolt.gz"`
	Timeout     time.Duration `long:"timeout" short:"t" env:"TIMEOUT" default:"600s" description:"Max request duration."`
	Verify      bool          `long:"verify" env:"VERIFY" description:"Open the saved backup and count its sessions."`
}

func (b *Backup) Execute(args []string) error {
	req, err := http.NewRequest(http.MethodGet, makeUrl(b.ServerUrl, "/api/admin/backup"), http.NoBody)
	if err != nil {
		return fmt.Errorf("cannot create request: %w", err)
	}
	req.SetBasicAuth("admin", b.AdminPasswd)

	client := &http.Client{Timeout: b.Timeout}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("cannot make request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Printf("[WARN] cannot close resp body: %v", err)
		}
	}()

	if resp.StatusCode != 200 {
		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("cannot read err response (status %d): %w", resp.StatusCode, err)
		}
		return fmt.Errorf("backup error (status %d): %w", resp.StatusCode, readJsonError(respBody))
	}

	fname := b.filename(resp)
	f, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", fname, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("[WARN] cannot close %s: %v", fname, err)
		}
	}()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return fmt.Errorf("cannot save backup to %s: %w", fname, err)
	}
	log.Printf("[INFO] backup saved to %s", fname)

	if !b.Verify {
		return nil
	}
	n, err := verifyBackup(fname)
	if err != nil {
		return fmt.Errorf("backup %s is broken: %w", fname, err)
	}
	log.Printf("[INFO] backup %s holds %d sessions", fname, n)
	return nil
}

// verifyBackup unpacks a gzipped bolt file into a temp dir and opens it.
func verifyBackup(fname string) (int, error) {
	f, err := os.Open(fname)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return 0, err
	}
	defer gz.Close()

	dir, err := os.MkdirTemp("", "datepicker-backup")
	if err != nil {
		return 0, err
	}
	defer os.RemoveAll(dir)

	dbFile := filepath.Join(dir, "sessions.bolt")
	out, err := os.Create(dbFile)
	if err != nil {
		return 0, err
	}
	if _, err := io.Copy(out, gz); err != nil {
		out.Close()
		return 0, err
	}
	if err := out.Close(); err != nil {
		return 0, err
	}

	db, err := engine.NewBolt(dbFile)
	if err != nil {
		return 0, err
	}
	defer db.Close()
	return db.Len(), nil
}

func (b *Backup) filename(resp *http.Response) string {
	if len(b.OutFile) > 0 {
		return b.OutFile
	}

	defName := fmt.Sprintf("sessions_%s.bolt.gz", time.Now().Format("2006-01-02"))

	vals, ok := resp.Header["Content-Disposition"]
	if !ok || len(vals) == 0 {
		return defName
	}

	_, params, err := mime.ParseMediaType(vals[0])
	if err != nil {
		return defName
	}

	name, ok := params["filename"]
	if !ok || len(name) == 0 {
		return defName
	}

	return name
}
