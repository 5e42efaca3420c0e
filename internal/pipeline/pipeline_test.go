package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Guliveer/prtg-sensors/internal/collector"
	"github.com/Guliveer/prtg-sensors/internal/prtg"
	"github.com/Guliveer/prtg-sensors/internal/runner"
)

// scripted returns a runner answering "name args..." keys from outputs.
// Commands listed in failures exit 1 with the given stderr.
func scripted(outputs map[string]string, failures map[string]string) runner.Runner {
	return runner.Func(func(_ context.Context, name string, args ...string) (runner.Output, error) {
		key := strings.TrimSpace(name + " " + strings.Join(args, " "))
		if stderr, ok := failures[key]; ok {
			return runner.Output{Stderr: []byte(stderr)}, &runner.CommandError{Command: key, ExitCode: 1, Stderr: stderr}
		}
		out, ok := outputs[key]
		if !ok {
			return runner.Output{}, &runner.CommandError{Command: key, ExitCode: -1, Err: fmt.Errorf("not found")}
		}
		return runner.Output{Stdout: []byte(out)}, nil
	})
}

func writeArcstats(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "arcstats")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

type decodedResponse struct {
	PRTG struct {
		Result []struct {
			Channel    string   `json:"channel"`
			Value      *float64 `json:"value"`
			Unit       string   `json:"unit"`
			CustomUnit string   `json:"customunit"`
			Float      int      `json:"float"`
		} `json:"result"`
		Text string `json:"text"`
	} `json:"prtg"`
}

func decode(t *testing.T, resp *prtg.Response, indent string) decodedResponse {
	t.Helper()
	var buf bytes.Buffer
	if err := resp.Write(&buf, indent); err != nil {
		t.Fatal(err)
	}
	var d decodedResponse
	if err := json.Unmarshal(buf.Bytes(), &d); err != nil {
		t.Fatalf("invalid JSON %v:\n%s", err, buf.String())
	}
	return d
}

func TestTemperature(t *testing.T) {
	r := scripted(map[string]string{
		"sensors -f": "coretemp-isa-0000\nAdapter: ISA adapter\nCore 0:      +102.0°F\n",
	}, nil)

	resp, err := Temperature(context.Background(), collector.NewSensorsCollector(r, "sensors", []string{"-f"}, nil))
	if err != nil {
		t.Fatal(err)
	}

	d := decode(t, resp, "")
	if len(d.PRTG.Result) != 1 {
		t.Fatalf("got %d channels, want 1", len(d.PRTG.Result))
	}
	ch := d.PRTG.Result[0]
	if ch.Channel != "coretemp_isa_0000_Core 0" || ch.Value == nil || *ch.Value != 102.0 {
		t.Errorf("channel = %+v", ch)
	}
	if ch.Unit != "Custom" || ch.CustomUnit != "°F" || ch.Float != 1 {
		t.Errorf("unit fields = %+v", ch)
	}
}

func TestTemperature_CommandFails(t *testing.T) {
	r := scripted(nil, map[string]string{"sensors -f": "No sensors found!"})

	resp, err := Temperature(context.Background(), collector.NewSensorsCollector(r, "sensors", []string{"-f"}, nil))
	if err == nil {
		t.Fatal("expected error")
	}
	if resp != nil {
		t.Error("no response should be produced on collector failure")
	}
	if errors.Is(err, ErrNoSensorData) {
		t.Error("command failure must not be reported as missing data")
	}
}

func TestTemperature_NoAdapters(t *testing.T) {
	r := scripted(map[string]string{"sensors -f": "nothing useful here\n"}, nil)

	_, err := Temperature(context.Background(), collector.NewSensorsCollector(r, "sensors", []string{"-f"}, nil))
	if !errors.Is(err, ErrNoSensorData) {
		t.Errorf("err = %v, want ErrNoSensorData", err)
	}
}

func TestZFS(t *testing.T) {
	r := scripted(map[string]string{
		"zpool list -Hp -o name,free,health": "tank\t1000000\tONLINE\n",
		"zpool status":                       "  pool: tank\n state: ONLINE\n",
	}, nil)
	arc := collector.NewARCCollector(writeArcstats(t, "hits 4 500\nmisses 4 20\n"), nil)

	resp, err := ZFS(context.Background(), collector.NewZpoolCollector(r, "zpool", nil), arc, prtg.DefaultZFSText, nil)
	if err != nil {
		t.Fatal(err)
	}

	d := decode(t, resp, "    ")
	want := map[string]float64{
		"Pool tank Free":   1000000,
		"Pool tank Health": 1,
		"ARC Hits":         500,
		"ARC Misses":       20,
	}
	if len(d.PRTG.Result) != len(want) {
		t.Fatalf("got %d channels, want %d", len(d.PRTG.Result), len(want))
	}
	for _, ch := range d.PRTG.Result {
		if ch.Value == nil || *ch.Value != want[ch.Channel] {
			t.Errorf("%s = %v, want %v", ch.Channel, ch.Value, want[ch.Channel])
		}
	}
	if d.PRTG.Text != "ZFS Pool Metrics and ARC Stats" {
		t.Errorf("text = %q", d.PRTG.Text)
	}
}

func TestZFS_MissingArcstatsStillEmitsPools(t *testing.T) {
	r := scripted(map[string]string{
		"zpool list -Hp -o name,free,health": "tank\t1000000\tONLINE\n",
		"zpool status":                       "ok",
	}, nil)
	arc := collector.NewARCCollector(filepath.Join(t.TempDir(), "missing"), nil)

	resp, err := ZFS(context.Background(), collector.NewZpoolCollector(r, "zpool", nil), arc, prtg.DefaultZFSText, nil)
	if err != nil {
		t.Fatal(err)
	}

	channels := resp.Channels()
	if len(channels) != 4 {
		t.Fatalf("got %d channels, want 4", len(channels))
	}
	if channels[0].Channel != "Pool tank Free" {
		t.Errorf("first channel = %q", channels[0].Channel)
	}
	if channels[2].Value.String() != "0" || channels[3].Value.String() != "0" {
		t.Errorf("ARC defaults = %s/%s, want 0/0", channels[2].Value, channels[3].Value)
	}
}

func TestZFS_ZeroPools(t *testing.T) {
	r := scripted(map[string]string{
		"zpool list -Hp -o name,free,health": "",
		"zpool status":                       "no pools available\n",
	}, nil)
	arc := collector.NewARCCollector(filepath.Join(t.TempDir(), "missing"), nil)

	resp, err := ZFS(context.Background(), collector.NewZpoolCollector(r, "zpool", nil), arc, prtg.DefaultZFSText, nil)
	if err != nil {
		t.Fatal(err)
	}

	d := decode(t, resp, "    ")
	if len(d.PRTG.Result) != 2 {
		t.Errorf("zero pools should leave only the ARC channels, got %+v", d.PRTG.Result)
	}
}

func TestZFS_PoolFailureAborts(t *testing.T) {
	r := scripted(map[string]string{
		"zpool list -Hp -o name,free,health": "tank\t1000000\tONLINE\n",
	}, map[string]string{
		"zpool status": "cannot open 'tank': no such pool",
	})
	arc := collector.NewARCCollector(writeArcstats(t, "hits 4 1\n"), nil)

	resp, err := ZFS(context.Background(), collector.NewZpoolCollector(r, "zpool", nil), arc, prtg.DefaultZFSText, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if resp != nil {
		t.Error("no JSON should be produced when a zpool command fails")
	}
	if got := FailureDetail(err); got != "cannot open 'tank': no such pool" {
		t.Errorf("FailureDetail = %q", got)
	}
}

func TestDrives(t *testing.T) {
	r := scripted(map[string]string{
		"lsblk -d -n -o NAME,MODEL": "sda WDC WD40EFRX\n",
		"smartctl -a /dev/sda":      "194 Temperature_Celsius     0x0022   114   102   000    Old_age   Always       -       36\n",
	}, nil)

	resp, err := Drives(context.Background(), collector.NewDriveCollector(r, "lsblk", "smartctl", nil))
	if err != nil {
		t.Fatal(err)
	}

	d := decode(t, resp, "  ")
	if len(d.PRTG.Result) != 1 {
		t.Fatalf("got %d channels, want 1", len(d.PRTG.Result))
	}
	ch := d.PRTG.Result[0]
	if ch.Channel != "WDC WD40EFRX (sda)" || ch.Value == nil || *ch.Value != 96.8 {
		t.Errorf("channel = %+v", ch)
	}
}

func TestFailureDetail_FallsBackToMessage(t *testing.T) {
	err := fmt.Errorf("listing pools: %w", &runner.CommandError{Command: "zpool list", ExitCode: -1, Err: errors.New("not found")})
	if got := FailureDetail(err); got != "listing pools: zpool list: not found" {
		t.Errorf("FailureDetail = %q", got)
	}
}
