package statusled

import (
	"os"
	"strings"

	"github.com/SebastiaanZ/cpx-pomodoro/internal/logging"
)

const deviceTreeModelPath = "/proc/device-tree/model"

// New picks the status LED for the host board. Boards without a known
// LED get a no-op controller.
func New() Controller {
	logger := logging.GetLogger("statusled")
	boardModel := detectBoard()

	switch {
	case strings.Contains(boardModel, "Raspberry Pi"):
		logger.Info("Driving the activity LED", "board_model", boardModel)
		return newSysfs("ACT")

	case strings.Contains(boardModel, "NanoPC-T6"):
		logger.Info("Driving the user LED", "board_model", boardModel)
		return newSysfs("usr_led")

	case strings.Contains(boardModel, "Orange Pi"):
		logger.Info("Driving the green LED", "board_model", boardModel)
		return newSysfs("green_led")

	default:
		logger.Info("No status LED known for this board, using no-op controller",
			"board_model", boardModel)
		return newNoop(logger)
	}
}

// detectBoard reads the device tree model to identify the host board.
func detectBoard() string {
	data, err := os.ReadFile(deviceTreeModelPath)
	if err != nil {
		return "unknown"
	}

	// Device tree strings are null terminated
	return strings.TrimRight(string(data), "\x00")
}
