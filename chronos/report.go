package chronos

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/colorfulnotion/chronos/log"
	"github.com/hashicorp/go-multierror"
)

// Config names where reports are written.
type Config struct {
	OutputDir string
	CSVFile   string
	TextFile  string
	ChartFile string
}

// DefaultConfig returns the report locations used by the CLI.
func DefaultConfig() *Config {
	return &Config{
		OutputDir: "profiler",
		CSVFile:   "ChronosProfile.csv",
		TextFile:  "ChronosProfile.txt",
		ChartFile: "program_timemap.html",
	}
}

func (c *Config) CSVPath() string   { return filepath.Join(c.OutputDir, c.CSVFile) }
func (c *Config) TextPath() string  { return filepath.Join(c.OutputDir, c.TextFile) }
func (c *Config) ChartPath() string { return filepath.Join(c.OutputDir, c.ChartFile) }

// ReportWriter persists one complete report blob at path.
type ReportWriter interface {
	WriteReport(path string, blob string) error
}

// FileWriter writes reports to the local file system, creating parent
// directories and overwriting existing files.
type FileWriter struct{}

func (FileWriter) WriteReport(path string, blob string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteReport, path, err)
	}
	if err := os.WriteFile(path, []byte(blob), 0644); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteReport, path, err)
	}
	return nil
}

// EmitReports aggregates the registry and returns the comma-separated and
// tab-separated reports, each starting with its header line.
func (p *Profiler) EmitReports() (csvReport, textReport string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.aggregate()

	var c, t strings.Builder
	c.WriteString(CSVHeader + "\n")
	t.WriteString(TextHeader + "\n")
	for _, r := range p.records {
		c.WriteString(r.CSV() + "\n")
		t.WriteString(r.String() + "\n")
	}
	return c.String(), t.String()
}

// Finish emits both reports and hands them to w at the locations named by
// cfg. Write failures are logged and returned together; both writes are
// always attempted.
func (p *Profiler) Finish(w ReportWriter, cfg *Config) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	csvReport, textReport := p.EmitReports()

	var merr error
	for _, out := range []struct{ path, blob string }{
		{cfg.CSVPath(), csvReport},
		{cfg.TextPath(), textReport},
	} {
		if err := w.WriteReport(out.path, out.blob); err != nil {
			log.Error(log.ProfilerMonitoring, "Error writing report", "path", out.path, "err", err)
			merr = multierror.Append(merr, err)
			continue
		}
		log.Info(log.ProfilerMonitoring, "report written", "path", out.path)
	}
	return merr
}

// ParseCSVReport reads a comma-separated report produced by EmitReports.
// Rows are written unquoted with the function name last, so each line is
// split into at most seven fields and the name is kept byte for byte,
// commas and quotes included. Call ids must not contain commas.
func ParseCSVReport(rd io.Reader) ([]Record, error) {
	sc := bufio.NewScanner(rd)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	if !sc.Scan() || sc.Text() != CSVHeader {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadReport, err)
		}
		return nil, fmt.Errorf("%w: missing header", ErrBadReport)
	}

	var out []Record
	for lineNo := 2; sc.Scan(); lineNo++ {
		line := sc.Text()
		if line == "" {
			continue
		}
		row := strings.SplitN(line, ",", 7)
		if len(row) < 7 {
			return nil, fmt.Errorf("%w: line %d: %d fields", ErrBadReport, lineNo, len(row))
		}
		var nums [4]float64
		for j, col := range []int{0, 1, 2, 4} {
			v, err := strconv.ParseFloat(row[col], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrBadReport, lineNo, err)
			}
			nums[j] = v
		}
		calls, err := strconv.ParseInt(row[3], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrBadReport, lineNo, err)
		}
		out = append(out, Record{
			Name:  row[6],
			ID:    row[5],
			max:   nums[0],
			min:   nums[1],
			mean:  nums[2],
			total: nums[3],
			calls: calls,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadReport, err)
	}
	return out, nil
}
