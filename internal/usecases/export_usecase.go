package usecases

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	domainerrors "campus-challenge.backend/internal/domain/errors"
	"campus-challenge.backend/internal/domain/repositories"
	"campus-challenge.backend/pkg/clock"
	"campus-challenge.backend/pkg/logger"
)

// Export formats
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

const msgExportFormatInvalid = "导出格式必须为 csv 或 xlsx"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var (
	teamExportHeader = []string{
		"ID", "团队名称", "参赛赛道", "作品名称", "代码仓库链接", "CoStrict 用户ID",
		"项目简介", "技术方案", "目标与展望", "成员数", "创建时间", "更新时间",
	}
	memberExportHeader = []string{
		"ID", "团队ID", "团队名称", "姓名", "是否为队长", "学校/单位", "学院/系别", "专业与年级",
		"联系电话", "电子邮箱", "学号", "项目角色", "技术栈/擅长领域", "创建时间", "更新时间",
	}
)

// ExportFile is a rendered export ready to be streamed
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportUsecase renders teams and members as spreadsheets
type ExportUsecase struct {
	teamRepo   repositories.TeamRepository
	memberRepo repositories.TeamMemberRepository
	clock      clock.Clock
}

func NewExportUsecase(
	teamRepo repositories.TeamRepository,
	memberRepo repositories.TeamMemberRepository,
	clk clock.Clock,
) *ExportUsecase {
	return &ExportUsecase{teamRepo: teamRepo, memberRepo: memberRepo, clock: clk}
}

func (u *ExportUsecase) ExportTeams(ctx context.Context, format string) (*ExportFile, error) {
	format, err := normalizeFormat(format)
	if err != nil {
		return nil, err
	}
	teams, _, err := u.teamRepo.ListAdmin(ctx, repositories.TeamFilter{})
	if err != nil {
		logger.Error(ctx, "Failed to load teams for export", zap.Error(err))
		return nil, domainerrors.InternalError(err)
	}

	loc := u.clock.Location()
	rows := make([][]string, 0, len(teams))
	for _, t := range teams {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(t.ID), 10),
			t.TeamName,
			string(t.CompetitionTrack),
			t.ProjectName,
			t.RepoURL.String,
			t.CostrictUID,
			t.ProjectIntro.String,
			t.TechSolution.String,
			t.GoalsAndOutlook.String,
			strconv.Itoa(len(t.Members)),
			clock.Format(t.CreatedAt, loc),
			clock.Format(t.UpdatedAt, loc),
		})
	}
	return u.render(ctx, "teams", "团队", format, teamExportHeader, rows)
}

func (u *ExportUsecase) ExportMembers(ctx context.Context, format string) (*ExportFile, error) {
	format, err := normalizeFormat(format)
	if err != nil {
		return nil, err
	}
	members, _, err := u.memberRepo.ListAdmin(ctx, repositories.MemberFilter{})
	if err != nil {
		logger.Error(ctx, "Failed to load members for export", zap.Error(err))
		return nil, domainerrors.InternalError(err)
	}

	loc := u.clock.Location()
	rows := make([][]string, 0, len(members))
	for _, m := range members {
		captain := "否"
		if m.IsCaptain {
			captain = "是"
		}
		rows = append(rows, []string{
			strconv.FormatUint(uint64(m.ID), 10),
			strconv.FormatUint(uint64(m.TeamID), 10),
			m.TeamName,
			m.Name,
			captain,
			m.School,
			m.Department,
			m.MajorGrade,
			m.Phone,
			m.Email,
			m.StudentID.String,
			m.Role,
			m.TechStack.String,
			clock.Format(m.CreatedAt, loc),
			clock.Format(m.UpdatedAt, loc),
		})
	}
	return u.render(ctx, "members", "成员", format, memberExportHeader, rows)
}

func (u *ExportUsecase) render(ctx context.Context, name, sheet, format string, header []string, rows [][]string) (*ExportFile, error) {
	stamp := u.clock.Now().Format("20060102_150405")
	var (
		data []byte
		err  error
	)
	file := &ExportFile{Filename: fmt.Sprintf("%s_%s.%s", name, stamp, format)}
	rows = neutralizeFormulas(rows)
	if format == FormatXLSX {
		file.ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		data, err = renderXLSX(sheet, header, rows)
	} else {
		file.ContentType = "text/csv; charset=utf-8"
		data, err = renderCSV(header, rows)
	}
	if err != nil {
		logger.Error(ctx, "Failed to render export", zap.String("format", format), zap.Error(err))
		return nil, domainerrors.InternalError(err)
	}
	file.Data = data
	return file, nil
}

// neutralizeFormulas quotes cells a spreadsheet would evaluate as formulas
func neutralizeFormulas(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = make([]string, len(row))
		for j, v := range row {
			if v != "" && strings.ContainsRune("=+-@\t\r", rune(v[0])) {
				v = "'" + v
			}
			out[i][j] = v
		}
	}
	return out
}

func normalizeFormat(format string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", domainerrors.Validation(msgExportFormatInvalid)
}

// renderCSV prefixes a BOM so spreadsheet apps detect UTF-8
func renderCSV(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderXLSX(sheet string, header []string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}

	if err := writeSheetRow(f, sheet, 1, header); err != nil {
		return nil, err
	}
	for i, row := range rows {
		if err := writeSheetRow(f, sheet, i+2, row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheetRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}
