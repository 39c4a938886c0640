package report

// View pairs an analytics view definition with the CSV file its contents are
// exported to. Rounded aggregates are cast back to float8 so scans come out
// as plain Go floats.
type View struct {
	Name    string
	SQL     string
	OutFile string
}

// Views lists every report the export stage produces.
var Views = []View{
	{
		Name:    "top_content_view",
		OutFile: "top_content_report.csv",
		SQL: `CREATE OR REPLACE VIEW top_content_view AS
			SELECT c.content_id,
			       c.title,
			       c.genre,
			       COUNT(u.usage_id) AS play_count,
			       SUM(u.duration_watched) AS total_minutes_watched,
			       ROUND(AVG(u.completion_rate)::numeric, 2)::float8 AS avg_completion_rate
			FROM content c
			JOIN usage_logs u ON u.content_id = c.content_id
			GROUP BY c.content_id, c.title, c.genre
			ORDER BY total_minutes_watched DESC
			LIMIT 20`,
	},
	{
		Name:    "engagement_metrics_view",
		OutFile: "engagement_report.csv",
		SQL: `CREATE OR REPLACE VIEW engagement_metrics_view AS
			SELECT p.name AS plan_name,
			       COUNT(DISTINCT s.customer_id) AS subscribers,
			       COUNT(u.usage_id) AS playback_events,
			       COALESCE(SUM(u.duration_watched), 0) AS total_minutes_watched,
			       COALESCE(ROUND(AVG(u.completion_rate)::numeric, 2)::float8, 0) AS avg_completion_rate
			FROM plans p
			LEFT JOIN subscriptions s ON s.plan_id = p.plan_id
			LEFT JOIN usage_logs u ON u.customer_id = s.customer_id
			GROUP BY p.plan_id, p.name
			ORDER BY p.plan_id`,
	},
}
