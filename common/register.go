package common

import maa "github.com/MaaXYZ/maa-framework-go/v4"

// Register 注册通用自定义动作与识别。
func Register() {
	maa.AgentServerRegisterCustomAction("RunNode", &RunNode{})
	maa.AgentServerRegisterCustomRecognition("CheckStopping", &CheckStopping{})
	maa.AgentServerRegisterCustomRecognition("ColorOCR", &ColorOCR{})
	maa.AgentServerRegisterCustomRecognition("ColorOCRWithFallback", &ColorOCRWithFallback{})
}
