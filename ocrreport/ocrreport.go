// Package ocrreport 打印指定识别节点的结果，可选追加写入文本文件。
package ocrreport

import (
	"fmt"
	"os"
	"strings"
	"time"

	maa "github.com/MaaXYZ/maa-framework-go/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/MaaYuan/MaaYuan/agent/go-service/pkg/maahost"
	"github.com/MaaYuan/MaaYuan/agent/go-service/pkg/param"
)

const timestampLayout = "2006-01-02 15:04:05"

var reportLog zerolog.Logger = log.With().Str("module", "ocrreport").Logger()

// OcrReport
//
// custom_action_param:
//   - recognition: 识别节点名（必填）
//   - format: 输出格式，{result} 替换为识别文本
//   - export: 是否追加写入文件
//   - filename: 导出文件名，缺少 .txt 后缀时自动补上
type OcrReport struct {
	now func() time.Time
}

var _ maa.CustomActionRunner = &OcrReport{}

func Register() {
	maa.AgentServerRegisterCustomAction("OcrReport", &OcrReport{})
}

func (a *OcrReport) Run(ctx *maa.Context, arg *maa.CustomActionArg) bool {
	return a.run(maahost.FromContext(ctx), arg.CustomActionParam)
}

func (a *OcrReport) clock() time.Time {
	if a.now != nil {
		return a.now()
	}
	return time.Now()
}

func (a *OcrReport) run(h maahost.Host, rawParam any) bool {
	params := param.Normalize(rawParam, "OcrReport")
	node := param.String(params, "recognition")
	if node == "" {
		reportLog.Warn().Msg("missing recognition param")
		return false
	}

	img, err := h.Screencap()
	if err != nil {
		reportLog.Warn().Err(err).Msg("screencap failed")
		return false
	}
	detail, err := h.RunRecognition(node, img, nil)
	if err != nil || detail == nil {
		reportLog.Info().Err(err).Str("recognition", node).Msg("recognition returned no detail")
		return true
	}

	if format, ok := params["format"].(string); ok {
		line := strings.ReplaceAll(format, "{result}", resultText(detail))
		reportLog.Info().Str("recognition", node).Msg(line)

		if param.Bool(params, "export") {
			filename := param.String(params, "filename")
			if filename == "" {
				reportLog.Warn().Msg("export enabled but filename is empty")
			} else if err := appendLine(exportPath(filename), a.clock(), line); err != nil {
				reportLog.Error().Err(err).Str("filename", filename).Msg("export failed")
			}
		}
	}

	for i, res := range detail.Items() {
		reportLog.Debug().
			Int("index", i).
			Str("box", res.Box.String()).
			Str("text", res.Text).
			Float64("score", res.Score).
			Msg("result")
	}
	return true
}

// resultText 优先使用结构化结果中的文本，取不到再深入原始 JSON 查找。
func resultText(d *maahost.Detail) string {
	if d.Best != nil && d.Best.Text != "" {
		return d.Best.Text
	}
	if text := maahost.DeepText(d.Raw); text != "" {
		return text
	}
	return d.BestText()
}

func exportPath(filename string) string {
	if strings.HasSuffix(strings.ToLower(filename), ".txt") {
		return filename
	}
	return filename + ".txt"
}

func appendLine(path string, at time.Time, line string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	if _, err := fmt.Fprintf(f, "%s %s\n", at.Format(timestampLayout), line); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
