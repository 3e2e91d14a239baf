// Package platform 汇总所有平台适配器 平台集合在编译期固定
package platform

import (
	_ "danmu-hub/internal/platform/sohu"
	_ "danmu-hub/internal/platform/tencent"
)
