package cmd

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/nvkalinin/datepicker/calendar"
	"github.com/stretchr/testify/require"
)

func newApp(t *testing.T, cmdMod func(*Server)) (cmd *Server, app *app, port int) {
	port = unusedPort()

	cmd = &Server{}
	cmd.Web.Listen = fmt.Sprintf("127.0.0.1:%d", port)
	cmd.Web.AdminPasswd = "pass"
	cmd.Web.ReadTimeout = 5 * time.Second
	cmd.Web.ReadHeaderTimeout = 5 * time.Second
	cmd.Web.WriteTimeout = 5 * time.Second
	cmd.Web.IdleTimeout = 30 * time.Second
	cmd.Web.RateLimiter.ReqLimit = 100
	cmd.Web.RateLimiter.LimitWindow = 1 * time.Second
	cmd.Store.Engine = EngineMemory
	cmd.Locale.Default = "fa"
	cmd.Picker.YearsBefore = 50
	cmd.Picker.YearsAfter = 50
	if cmdMod != nil {
		cmdMod(cmd)
	}

	var err error
	app, err = cmd.makeApp()
	require.NoError(t, err)

	return cmd, app, port
}

func unusedPort() int {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		panic(err)
	}
	port := l.Addr().(*net.TCPAddr).Port
	if err := l.Close(); err != nil {
		panic(err)
	}
	return port
}

// waitForHTTP polls the heartbeat endpoint until the server answers.
func waitForHTTP(port int) {
	url := fmt.Sprintf("http://127.0.0.1:%d/ping", port)
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if resp, err := http.Get(url); err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(20 * time.Millisecond)
	}
	panic("server did not start on " + url)
}

func getBody(t *testing.T, url string) (int, string) {
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	json, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(json)
}

func postBody(t *testing.T, url, body string) (int, string) {
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	json, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(json)
}

// Nowruz 1403, 2024-03-20.
var testNow = time.Date(2024, time.March, 20, 12, 0, 0, 0, time.UTC)

func testCalendars() *calendar.Registry {
	now := func() time.Time { return testNow }

	j, g, h, c := calendar.NewJalali(), calendar.NewGregorian(), calendar.NewHijri(), calendar.NewChinese()
	j.Now, g.Now, h.Now, c.Now = now, now, now, now
	return calendar.NewRegistry(j, g, h, c)
}
