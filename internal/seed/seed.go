package seed

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/jyhan-dev/seodang/internal/pkg/dberrors"
)

// defaultTemplateBody is the built-in monthly progress report. Real
// deployments manage templates through the database; this one guarantees a
// fresh install can render a report immediately.
const defaultTemplateBody = `<!DOCTYPE html>
<html lang="ko">
<head>
<meta charset="utf-8">
<style>
  body { font-family: 'Noto Sans KR', sans-serif; color: #1f2937; margin: 0; }
  h1 { font-size: 22px; border-bottom: 2px solid #2563eb; padding-bottom: 8px; }
  h2 { font-size: 16px; margin-top: 24px; }
  table { width: 100%; border-collapse: collapse; font-size: 12px; }
  th, td { border: 1px solid #d1d5db; padding: 6px 8px; text-align: center; }
  th { background: #f3f4f6; }
  .meta { font-size: 12px; color: #6b7280; }
  .section { page-break-inside: avoid; }
</style>
</head>
<body>
  <h1>{{student_name}} 학습 리포트</h1>
  <p class="meta">{{report_date}} · {{student_class}} · {{period_from}} ~ {{period_to}}</p>

  <div class="section">
    <h2>점수 추이</h2>
    {{score_chart}}
    <p>최근 시험: {{latest_exam_date}} · {{latest_score}}점 (레벨 {{latest_level}})</p>
    <p>추세: {{score_pattern_label}} · 다음 예상 점수: {{predicted_score}}점 (신뢰도 {{prediction_confidence}})</p>
    <p>강점 영역: {{skill_strengths}} · 보완 영역: {{skill_weaknesses}}</p>
  </div>

  <div class="section">
    <h2>최근 성적</h2>
    <table>
      <tr><th>시험일</th><th>총점</th><th>읽기</th><th>듣기</th><th>쓰기</th><th>레벨</th></tr>
      {{recent_score_rows}}
    </table>
  </div>

  <div class="section">
    <h2>학습 평가</h2>
    <p>{{academic_evaluation}}</p>
    <p>{{korean_evaluation}}</p>
    <p>{{adaptation_evaluation}}</p>
    <p><strong>권고:</strong> {{recommendation}}</p>
  </div>

  <div class="section">
    <h2>목표</h2>
    {{goal_timeline}}
  </div>
</body>
</html>`

// CreateDefaultData inserts the built-in report template if it is missing.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default report template...")

	query := squirrel.Insert("report_templates").
		Columns("code", "version", "language", "name", "body", "active").
		Values("monthly_progress", 1, "ko", "월간 학습 리포트", defaultTemplateBody, true).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	if _, err := dbPool.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_report_templates_code_version_language") {
			lgr.Info().Msg("Default report template already present")
			return nil
		}
		lgr.Error().Err(err).Msg("Error creating default report template")
		return err
	}

	lgr.Info().Msg("Default report template created")
	return nil
}
