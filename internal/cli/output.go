package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/shaiso/ritm-launch/internal/domain"
)

// Output управляет форматированием вывода CLI.
type Output struct {
	jsonMode bool
	w        io.Writer // stdout для данных
	errW     io.Writer // stderr для сообщений
}

// NewOutput создаёт Output. Если jsonMode=true, данные выводятся в JSON.
func NewOutput(jsonMode bool) *Output {
	return NewOutputTo(jsonMode, os.Stdout, os.Stderr)
}

// NewOutputTo создаёт Output с явными writers.
func NewOutputTo(jsonMode bool, w, errW io.Writer) *Output {
	return &Output{jsonMode: jsonMode, w: w, errW: errW}
}

// KeyValues выводит пары ключ-значение: таблицей или JSON (jsonData).
func (o *Output) KeyValues(pairs [][2]string, jsonData any) {
	if o.jsonMode {
		o.JSON(jsonData)
		return
	}

	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
	for _, kv := range pairs {
		fmt.Fprintf(tw, "%s\t%s\n", kv[0], kv[1])
	}
	tw.Flush()
}

// Report выводит отчёт прогона pipeline.
func (o *Output) Report(r *domain.Report) {
	pairs := [][2]string{
		{"RUN_ID", r.RunID.String()},
		{"RECORD", r.RecordNumber},
		{"OUTCOME", string(r.Outcome)},
	}
	if r.JobID != "" {
		pairs = append(pairs, [2]string{"JOB_ID", r.JobID}, [2]string{"JOB_URL", r.JobURL})
	}
	if r.Error != "" {
		pairs = append(pairs, [2]string{"ERROR", r.Error})
	}
	if u := r.Update; u != nil {
		pairs = append(pairs, [2]string{"work_notes", u.WorkNotes})
		if u.AAPJobID != "" {
			pairs = append(pairs, [2]string{"u_aap_job_id", u.AAPJobID})
		}
		if u.AAPJobStatus != "" {
			pairs = append(pairs, [2]string{"u_aap_job_status", string(u.AAPJobStatus)})
		}
		if u.HasStateTransition() {
			pairs = append(pairs, [2]string{"state", string(u.State)})
		}
	}
	for _, e := range r.Journal {
		pairs = append(pairs, [2]string{"LOG", e.Level + ": " + e.Text})
	}
	o.KeyValues(pairs, r)
}

// Variables выводит extra_vars.
func (o *Output) Variables(v domain.OrchestrationVariables) {
	m := v.AsMap()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([][2]string, len(keys))
	for i, k := range keys {
		pairs[i] = [2]string{k, m[k]}
	}
	o.KeyValues(pairs, v)
}

// JSON выводит данные в формате JSON с отступами.
func (o *Output) JSON(v any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

// Success выводит сообщение об успехе в stderr.
func (o *Output) Success(msg string) {
	fmt.Fprintln(o.errW, msg)
}

// Error выводит сообщение об ошибке в stderr.
func (o *Output) Error(msg string) {
	fmt.Fprintln(o.errW, "Error: "+strings.TrimSpace(msg))
}
