package hroute

import (
	jsoniter "github.com/json-iterator/go"
)

// Json is the codec used by Context.JSON.
var Json = jsoniter.ConfigCompatibleWithStandardLibrary
