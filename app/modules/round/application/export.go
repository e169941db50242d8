package roundservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/xuri/excelize/v2"

	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"
	"github.com/hablemos-club/league-bot/app/shared/utils/results"

	rounddb "github.com/hablemos-club/league-bot/app/modules/round/infrastructure/repositories"
)

// ErrRoundNotCompleted is returned when a report is requested for a round
// that has not closed yet.
var ErrRoundNotCompleted = errors.New("report is only available for completed rounds")

// ExportRoundReport builds an XLSX workbook with the persisted podium of a
// completed round.
func (s *RoundService) ExportRoundReport(ctx context.Context, roundNumber sharedtypes.RoundNumber) (*RoundReport, error) {
	exportTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*RoundReport, error], error) {
		return s.exportRoundReportLogic(ctx, db, roundNumber)
	}

	result, err := withTelemetry(s, ctx, "ExportRoundReport", fmt.Sprintf("round=%d", roundNumber), func(ctx context.Context) (results.OperationResult[*RoundReport, error], error) {
		return runInTx(s, ctx, exportTx)
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return *result.Success, nil
}

// exportRoundReportLogic contains the core logic.
func (s *RoundService) exportRoundReportLogic(ctx context.Context, db bun.IDB, roundNumber sharedtypes.RoundNumber) (results.OperationResult[*RoundReport, error], error) {
	round, err := s.repo.GetByRoundNumber(ctx, db, roundNumber)
	if err != nil {
		if errors.Is(err, rounddb.ErrNotFound) {
			return results.FailureResult[*RoundReport, error](err), nil
		}
		return results.OperationResult[*RoundReport, error]{}, fmt.Errorf("failed to read round: %w", err)
	}
	if round.Status != sharedtypes.RoundStatusCompleted {
		return results.FailureResult[*RoundReport, error](ErrRoundNotCompleted), nil
	}

	winners, err := s.repo.GetWinnersByRound(ctx, db, round.ID)
	if err != nil {
		return results.OperationResult[*RoundReport, error]{}, fmt.Errorf("failed to read winners: %w", err)
	}

	data, err := buildReportWorkbook(round, winners)
	if err != nil {
		return results.OperationResult[*RoundReport, error]{}, fmt.Errorf("failed to build workbook: %w", err)
	}

	report := &RoundReport{
		RoundNumber: round.RoundNumber,
		Filename:    fmt.Sprintf("round-%d-report.xlsx", round.RoundNumber),
		Data:        data,
	}
	return results.SuccessResult[*RoundReport, error](report), nil
}

// buildReportWorkbook renders a single-sheet workbook: round summary on top,
// then the podium table ordered as persisted (league, rank).
func buildReportWorkbook(round *rounddb.Round, winners []rounddb.RoundWinner) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Report"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	const timeLayout = "2006-01-02 15:04 MST"
	summary := [][]any{
		{"Round", int64(round.RoundNumber)},
		{"Started", round.StartTime.UTC().Format(timeLayout)},
		{"Ended", round.EndTime.UTC().Format(timeLayout)},
		{"Podium entries", len(winners)},
	}
	for i, row := range summary {
		if err := writeReportRow(f, sheet, i+1, row); err != nil {
			return nil, err
		}
	}

	headerRow := len(summary) + 2
	header := []any{"League", "Rank", "Username", "User ID", "Total Score", "Active Days"}
	if err := writeReportRow(f, sheet, headerRow, header); err != nil {
		return nil, err
	}

	for i, w := range winners {
		row := []any{string(w.LeagueType), w.Rank, w.Username, string(w.UserID), w.TotalScore, w.ActiveDays}
		if err := writeReportRow(f, sheet, headerRow+1+i, row); err != nil {
			return nil, err
		}
	}

	if err := f.SetColWidth(sheet, "A", "D", 22); err != nil {
		return nil, fmt.Errorf("failed to size columns: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeReportRow(f *excelize.File, sheet string, row int, values []any) error {
	axis, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to address row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, axis, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}
