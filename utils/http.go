/*
 * Copyright 2022 The Go Authors<36625090@qq.com>. All rights reserved.
 * Use of this source code is governed by a MIT-style
 * license that can be found in the LICENSE file.
 */

package utils

import (
	"net/http"
	"strings"
)

func GetRemoteAddr(r *http.Request) string {
	remoteAddr := r.Header.Get("X-Forwarded-For")
	if remoteAddr != "" {
		// 多级代理时取第一个
		if i := strings.IndexByte(remoteAddr, ','); i > 0 {
			remoteAddr = strings.TrimSpace(remoteAddr[:i])
		}
		return remoteAddr
	}
	remoteAddr = r.Header.Get("X-Real-IP")
	if remoteAddr == "" {
		remoteAddr = r.RemoteAddr
	}
	return remoteAddr
}

// HeaderOr 读取请求头, 为空时返回默认值
func HeaderOr(h http.Header, key, def string) string {
	if v := strings.TrimSpace(h.Get(key)); v != "" {
		return v
	}
	return def
}
