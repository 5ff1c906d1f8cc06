package utils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// probeFunc 方便测试时替换，线上调用 ffprobe
var probeFunc = ffmpeg.Probe

type probeResult struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// ProbeDuration 读取本地视频文件的时长（秒）
func ProbeDuration(videoPath string) (float64, error) {
	out, err := probeFunc(videoPath)
	if err != nil {
		return 0, errors.WithMessage(err, "ffprobe failed")
	}
	return parseProbeDuration(out)
}

func parseProbeDuration(out string) (float64, error) {
	var r probeResult
	if err := json.Unmarshal([]byte(out), &r); err != nil {
		return 0, errors.WithMessage(err, "decode ffprobe output failed")
	}
	d, err := strconv.ParseFloat(r.Format.Duration, 64)
	if err != nil {
		return 0, errors.WithMessage(err, "invalid duration in ffprobe output")
	}
	return d, nil
}

// GetVideoThumbnail 截取视频第一帧作为封面
func GetVideoThumbnail(videoPath, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
		return "", errors.WithMessage(err, "Failed to create folders")
	}
	outputPath := filepath.Join(outputDir, "thumbnail.jpg")
	err := ffmpeg.Input(videoPath).
		Output(outputPath, ffmpeg.KwArgs{
			"ss":      "00:00:00",
			"vframes": "1",
		}).
		OverWriteOutput().
		Run()
	if err != nil {
		return "", errors.WithMessage(err, "Failed to generate the thumbnail")
	}
	return outputPath, nil
}
