package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"fantaprof/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportEmpty        = errors.New("排行榜为空，无可导出数据")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response。
type ExportService interface {
	// ExportLeaderboard 导出排行榜为 Excel。
	// leagueID 为 nil 时导出全局排行榜，否则导出指定联赛。
	ExportLeaderboard(ctx context.Context, leagueID *uint) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

func (s *exportService) ExportLeaderboard(ctx context.Context, leagueID *uint) (*bytes.Buffer, string, error) {
	// 1. 查询排行榜
	var (
		entries []repository.LeaderboardEntry
		title   string
		err     error
	)
	if leagueID == nil {
		entries, err = s.repo.Team.GlobalLeaderboard(ctx, 0)
		title = "Classifica Globale"
	} else {
		league, lerr := s.repo.League.GetByID(ctx, *leagueID)
		if lerr != nil {
			if errors.Is(lerr, gorm.ErrRecordNotFound) {
				return nil, "", ErrLeagueNotFound
			}
			return nil, "", lerr
		}
		entries, err = s.repo.Team.LeagueLeaderboard(ctx, *leagueID)
		title = "Classifica " + league.Name
	}
	if err != nil {
		s.logger.Error("查询排行榜失败", zap.Error(err))
		return nil, "", err
	}
	if len(entries) == 0 {
		return nil, "", ErrExportEmpty
	}

	// 2. 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Classifica"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 8)
	f.SetColWidth(sheetName, "B", "B", 24)
	f.SetColWidth(sheetName, "C", "C", 20)
	f.SetColWidth(sheetName, "D", "D", 20)
	f.SetColWidth(sheetName, "E", "E", 12)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", title)
	f.MergeCell(sheetName, "A1", "E1")

	// 表头
	headers := []string{"Pos.", "Squadra", "Utente", "Lega", "Punti"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		f.SetCellValue(sheetName, cell, h)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	// 数据行
	for i, e := range entries {
		row := i + 3
		leagueName := ""
		if e.LeagueName != nil {
			leagueName = *e.LeagueName
		}
		values := []interface{}{i + 1, e.TeamName, e.Username, leagueName, e.TotalScore}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("写出 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("classifica_%s.xlsx", time.Now().Format("20060102_150405"))
	return buf, filename, nil
}
