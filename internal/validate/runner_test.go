package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamlake/internal/schema"
)

// fixture is a full raw data directory, one entry per dataset file. Tests
// override individual files to break specific datasets.
type fixture map[string]string

func cleanFixture() fixture {
	return fixture{
		"customers.csv": "customer_id,name,email,signup_date,device_type,country\n" +
			"1,Alice,a@example.com,2024-01-15,mobile,US\n" +
			"2,Ben,b@example.com,2023-11-02,smart_tv,UK\n",
		"plans.csv": "plan_id,name,price\n" +
			"1,Basic,8.99\n" +
			"2,Standard,13.99\n",
		"content.csv": "content_id,title,genre,duration_minutes\n" +
			"10,Quiet Harbor,movie,120\n" +
			"11,Morning Static,podcast,45\n",
		"subscriptions.csv": "subscription_id,customer_id,plan_id,start_date,end_date,auto_renew\n" +
			"1,1,1,2024-01-20,,true\n" +
			"2,2,2,2023-12-01,2024-12-01,false\n",
		"usage_logs.csv": "usage_id,customer_id,content_id,timestamp,duration_watched,completion_rate\n" +
			"1,1,10,2025-07-01T20:00:00Z,90,0.75\n" +
			"2,2,11,2025-07-02T08:15:00Z,45,1.0\n",
	}
}

func (f fixture) write(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for file, content := range f {
		writeCSV(t, dir, file, content)
	}
	return dir
}

func newTestRunner(t *testing.T, dir string) (*Runner, *Recorder) {
	t.Helper()
	rec := NewRecorder(nil)
	return NewRunner(schema.Default(), dir, rec, nil), rec
}

func TestRunnerCleanRun(t *testing.T) {
	runner, rec := newTestRunner(t, cleanFixture().write(t))

	res, err := runner.Run()
	require.NoError(t, err)
	assert.False(t, res.Failed())
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", res.RunID.String())

	for _, ds := range schema.Default().All() {
		assert.Equal(t, Stats{Valid: 2, Invalid: 0}, res.Stats[ds.Name], ds.Name)
		assert.Len(t, res.Rows(ds.Name), 2, ds.Name)
	}
	assert.Zero(t, rec.Len())
}

func TestRunnerCountsRowLevelFailures(t *testing.T) {
	fix := cleanFixture()
	// One type failure and one rule failure in subscriptions: both fold into
	// a single invalid count for the dataset.
	fix["subscriptions.csv"] = "subscription_id,customer_id,plan_id,start_date,end_date,auto_renew\n" +
		"1,1,1,2024-01-20,,true\n" +
		"2,2,2,2023-12-01,2024-12-01,maybe\n" +
		"3,1,2,2024-12-01,2024-01-01,false\n"
	// One referential failure in usage_logs.
	fix["usage_logs.csv"] = "usage_id,customer_id,content_id,timestamp,duration_watched,completion_rate\n" +
		"1,1,10,2025-07-01T20:00:00Z,90,0.75\n" +
		"2,999,11,2025-07-02T08:15:00Z,45,1.0\n"

	runner, rec := newTestRunner(t, fix.write(t))
	res, err := runner.Run()
	require.NoError(t, err)
	assert.False(t, res.Failed())

	assert.Equal(t, Stats{Valid: 1, Invalid: 2}, res.Stats["subscriptions"])
	assert.Equal(t, Stats{Valid: 1, Invalid: 1}, res.Stats["usage_logs"])
	assert.Equal(t, Stats{Valid: 2, Invalid: 0}, res.Stats["customers"])

	require.Equal(t, 3, rec.Len())
	diags := rec.Entries()
	assert.Equal(t, "subscriptions", diags[0].Dataset)
	assert.Equal(t, 3, diags[0].Line)
	assert.Contains(t, diags[0].Message, "auto_renew")
	assert.Equal(t, 4, diags[1].Line)
	assert.Contains(t, diags[1].Message, "start_date")
	assert.Equal(t, "usage_logs", diags[2].Dataset)
	assert.Contains(t, diags[2].Message, "unknown customer_id 999")
}

func TestRunnerSchemaMismatchBlocksDependents(t *testing.T) {
	fix := cleanFixture()
	fix["customers.csv"] = "name,customer_id,email,signup_date,device_type,country\n"

	runner, _ := newTestRunner(t, fix.write(t))
	res, err := runner.Run()
	require.NoError(t, err)
	assert.True(t, res.Failed())

	var mismatch *SchemaMismatchError
	require.ErrorAs(t, res.Fatal["customers"], &mismatch)

	// usage_logs depends on customers referentially and is blocked.
	assert.Contains(t, res.Fatal, "usage_logs")
	assert.Empty(t, res.Rows("usage_logs"))

	// Independent datasets and subscriptions still validate.
	assert.Equal(t, Stats{Valid: 2, Invalid: 0}, res.Stats["plans"])
	assert.Equal(t, Stats{Valid: 2, Invalid: 0}, res.Stats["content"])
	assert.Equal(t, Stats{Valid: 2, Invalid: 0}, res.Stats["subscriptions"])
}

func TestRunnerContentMismatchBlocksUsage(t *testing.T) {
	fix := cleanFixture()
	fix["content.csv"] = "content_id,title,genre\n"

	runner, _ := newTestRunner(t, fix.write(t))
	res, err := runner.Run()
	require.NoError(t, err)

	assert.Contains(t, res.Fatal, "content")
	assert.Contains(t, res.Fatal, "usage_logs")
	assert.NotContains(t, res.Fatal, "customers")
	assert.NotContains(t, res.Fatal, "subscriptions")
}

func TestRunnerMissingSourceAbortsRun(t *testing.T) {
	fix := cleanFixture()
	delete(fix, "plans.csv")

	runner, _ := newTestRunner(t, fix.write(t))
	res, err := runner.Run()

	var missing *SourceMissingError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "plans", missing.Dataset)
	assert.Nil(t, res)
}

func TestRunnerHeaderOnlySourcesYieldZeroStats(t *testing.T) {
	fix := fixture{}
	for _, ds := range schema.Default().All() {
		header := ""
		for i, col := range ds.Columns {
			if i > 0 {
				header += ","
			}
			header += col.Name
		}
		fix[ds.File] = header + "\n"
	}

	runner, rec := newTestRunner(t, fix.write(t))
	res, err := runner.Run()
	require.NoError(t, err)
	assert.False(t, res.Failed())

	for _, ds := range schema.Default().All() {
		assert.Equal(t, Stats{Valid: 0, Invalid: 0}, res.Stats[ds.Name], ds.Name)
	}
	assert.Zero(t, rec.Len())
}
