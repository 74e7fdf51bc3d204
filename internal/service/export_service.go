package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/saelmaa/pso-itsmentormatch/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoSessions   = errors.New("You have no sessions to export yet.")
	ErrExportGenerateFail = errors.New("Failed to generate the spreadsheet.")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 导出当前用户全部会话历史为 Excel (.xlsx)
//   - 以 bytes.Buffer 返回，由 Handler 层设置下载响应头
type ExportService interface {
	ExportSessions(ctx context.Context, userID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	now    Clock
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, now Clock, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, now: now, logger: logger}
}

// sessionSheet 工作表名称
const sessionSheet = "Sessions"

// sessionColumns 表头
var sessionColumns = []string{"Date", "Time", "Duration (min)", "Mentor", "Department", "Topic", "Type", "Status", "Rating", "Feedback", "Notes"}

// ═══════════════════════════════════════════════════════════
// ExportSessions — 导出会话历史
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单 Sheet "Sessions"，第 1 行为表头并冻结
//   - 每行一个会话，按日期、时间倒序
//   - Rating / Feedback 取该会话的评价，未评价留空
//   - 末尾汇总行：会话总数与已完成数

func (s *exportService) ExportSessions(ctx context.Context, userID string) (*bytes.Buffer, string, error) {
	sessions, err := s.repo.Session.ListAllByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询会话历史失败", zap.String("user_id", userID), zap.Error(err))
		return nil, "", err
	}
	if len(sessions) == 0 {
		return nil, "", ErrExportNoSessions
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sessionSheet)
	if err != nil {
		s.logger.Error("创建工作表失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#2563EB"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	for i, title := range sessionColumns {
		f.SetCellValue(sessionSheet, cell(colName(i), 1), title)
	}
	f.SetCellStyle(sessionSheet, "A1", cell(colName(len(sessionColumns)-1), 1), headerStyle)
	f.SetPanes(sessionSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	completed := 0
	row := 2
	for i := range sessions {
		sess := &sessions[i]
		if sess.IsCompleted() {
			completed++
		}

		mentorName, department := "", ""
		if sess.Mentor != nil {
			mentorName = sess.Mentor.Name
			department = sess.Mentor.Department
		}

		values := []interface{}{
			sess.DateString(),
			sess.TimeString(),
			sess.Duration,
			mentorName,
			department,
			sess.Topic,
			sess.TypeLabel(),
			sess.Status,
			"",
			"",
			sess.Notes,
		}
		if sess.Review != nil {
			values[8] = sess.Review.Rating
			values[9] = sess.Review.Feedback
		}
		for col, v := range values {
			f.SetCellValue(sessionSheet, cell(colName(col), row), v)
		}
		row++
	}

	// 汇总行
	row++
	f.SetCellValue(sessionSheet, cell("A", row), "Total sessions")
	f.SetCellValue(sessionSheet, cell("C", row), len(sessions))
	f.SetCellValue(sessionSheet, cell("A", row+1), "Completed")
	f.SetCellValue(sessionSheet, cell("C", row+1), completed)

	// 列宽
	widths := []float64{12, 8, 14, 24, 22, 32, 12, 12, 8, 40, 40}
	for i, w := range widths {
		col := colName(i)
		f.SetColWidth(sessionSheet, col, col, w)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("mentormatch-sessions-%s.xlsx", s.now().Format("20060102"))
	return buf, filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
