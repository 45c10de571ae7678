package nanyang

import "github.com/MaaXYZ/maa-framework-go/v4"

var _ maa.TaskerEventSink = &TendingSession{}

// Register 注册躬耕南阳相关的识别、动作以及护理会话的重置 sink。
func Register() {
	session := NewTendingSession()
	maa.AgentServerAddTaskerSink(session)

	maa.AgentServerRegisterCustomRecognition("NanyangStamina", &NanyangStamina{})
	maa.AgentServerRegisterCustomRecognition("NanyangCheckBullets", &NanyangCheckBullets{})
	maa.AgentServerRegisterCustomAction("NanyangSell", &NanyangSell{})
	maa.AgentServerRegisterCustomAction("NanyangSwitchBullet", &NanyangSwitchBullet{})
	maa.AgentServerRegisterCustomAction("NanyangTendingAbandon", &NanyangTendingAbandon{session: session})
	nyLog.Info().Msg("registered custom recognition/actions")
}
