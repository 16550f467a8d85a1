package utils

import (
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
)

// Bytes2Struct converts a JSON byte slice to a struct.
func Bytes2Struct[T any](data []byte) (T, error) {
	var result T
	err := json.Unmarshal(data, &result)
	if err != nil {
		return result, err
	}
	return result, nil
}

// MergeStruct 把 JSON 覆盖到 base 上, data 中没有的字段保留 base 的值
func MergeStruct[T any](base T, data []byte) (T, error) {
	if len(data) == 0 {
		return base, nil
	}
	if err := json.Unmarshal(data, &base); err != nil {
		return base, err
	}
	return base, nil
}

// MakeShutdownCh 收到 SIGINT/SIGTERM 时关闭返回的 channel
func MakeShutdownCh() chan struct{} {
	resultCh := make(chan struct{})
	signalCh := make(chan os.Signal, 4)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signalCh
		signal.Stop(signalCh)
		close(resultCh)
	}()
	return resultCh
}
