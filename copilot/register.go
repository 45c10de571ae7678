package copilot

import "github.com/MaaXYZ/maa-framework-go/v4"

var (
	_ maa.CustomActionRunner = &CopilotInfo{}
	_ maa.CustomActionRunner = &DownRestart{}
	_ maa.CustomActionRunner = &RetreatRestart{}
	_ maa.CustomActionRunner = &BirdRestart{}
)

// Register registers the copilot actions.
func Register() {
	maa.AgentServerRegisterCustomAction("CopilotInfo", &CopilotInfo{})
	maa.AgentServerRegisterCustomAction("DownRestart", &DownRestart{})
	maa.AgentServerRegisterCustomAction("RetreatRestart", &RetreatRestart{})
	maa.AgentServerRegisterCustomAction("BirdRestart", &BirdRestart{})
}
