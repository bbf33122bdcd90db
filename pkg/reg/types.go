/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package reg

func label(s *Semantic, raw uint32) string {
	l, _ := s.Label(raw)
	return l
}

// CameraEvents are reported by Cam0Event and Cam1Event
type CameraEvents uint8

const (
	CameraEventTrigger CameraEvents = 0x01
	CameraEventStrobe  CameraEvents = 0x02
)

var CameraEventsSemantic = &Semantic{
	Name: "CameraEvents",
	Kind: KindFlags,
	Members: []Member{
		{"Trigger", uint32(CameraEventTrigger)},
		{"Strobe", uint32(CameraEventStrobe)},
	},
}

func (v CameraEvents) String() string { return label(CameraEventsSemantic, uint32(v)) }

// EventConfiguration selects which edge produces a camera event
type EventConfiguration uint8

const (
	EventOnStrobe  EventConfiguration = 0
	EventOnTrigger EventConfiguration = 1
)

var EventConfigurationSemantic = &Semantic{
	Name: "EventConfiguration",
	Kind: KindEnum,
	Members: []Member{
		{"EventOnStrobe", uint32(EventOnStrobe)},
		{"EventOnTrigger", uint32(EventOnTrigger)},
	},
}

func (v EventConfiguration) String() string { return label(EventConfigurationSemantic, uint32(v)) }

// CameraFlags start, stop or single shot the cameras
type CameraFlags uint8

const (
	StartCam0       CameraFlags = 0x01
	StartCam1       CameraFlags = 0x02
	StopCam0        CameraFlags = 0x04
	StopCam1        CameraFlags = 0x08
	SingleFrameCam0 CameraFlags = 0x10
	SingleFrameCam1 CameraFlags = 0x20
)

var CameraFlagsSemantic = &Semantic{
	Name: "CameraFlags",
	Kind: KindFlags,
	Members: []Member{
		{"StartCam0", uint32(StartCam0)},
		{"StartCam1", uint32(StartCam1)},
		{"StopCam0", uint32(StopCam0)},
		{"StopCam1", uint32(StopCam1)},
		{"SingleFrameCam0", uint32(SingleFrameCam0)},
		{"SingleFrameCam1", uint32(SingleFrameCam1)},
	},
}

func (v CameraFlags) String() string { return label(CameraFlagsSemantic, uint32(v)) }

// TriggerSource selects one of the internal trigger rates or an external input
type TriggerSource uint8

const (
	TriggerSource1Hz TriggerSource = iota
	TriggerSource2Hz
	TriggerSource5Hz
	TriggerSource10Hz
	TriggerSource15Hz
	TriggerSource20Hz
	TriggerSource25Hz
	TriggerSource30Hz
	TriggerSource40Hz
	TriggerSource50Hz
	TriggerSource60Hz
	TriggerSource100Hz
	TriggerSource125Hz
	// 13 and 14 are reserved, they decode as plain numbers
	_
	_
	TriggerSourceInput0
)

var TriggerSourceSemantic = &Semantic{
	Name: "TriggerSource",
	Kind: KindEnum,
	Members: []Member{
		{"Internal1Hz", uint32(TriggerSource1Hz)},
		{"Internal2Hz", uint32(TriggerSource2Hz)},
		{"Internal5Hz", uint32(TriggerSource5Hz)},
		{"Internal10Hz", uint32(TriggerSource10Hz)},
		{"Internal15Hz", uint32(TriggerSource15Hz)},
		{"Internal20Hz", uint32(TriggerSource20Hz)},
		{"Internal25Hz", uint32(TriggerSource25Hz)},
		{"Internal30Hz", uint32(TriggerSource30Hz)},
		{"Internal40Hz", uint32(TriggerSource40Hz)},
		{"Internal50Hz", uint32(TriggerSource50Hz)},
		{"Internal60Hz", uint32(TriggerSource60Hz)},
		{"Internal100Hz", uint32(TriggerSource100Hz)},
		{"Internal125Hz", uint32(TriggerSource125Hz)},
		{"ExternalInput0", uint32(TriggerSourceInput0)},
	},
}

func (v TriggerSource) String() string { return label(TriggerSourceSemantic, uint32(v)) }

type TriggerInverted uint8

const (
	TriggerInvertedNo  TriggerInverted = 0
	TriggerInvertedYes TriggerInverted = 1
)

var TriggerInvertedSemantic = &Semantic{
	Name: "TriggerInverted",
	Kind: KindEnum,
	Members: []Member{
		{"No", uint32(TriggerInvertedNo)},
		{"Yes", uint32(TriggerInvertedYes)},
	},
}

func (v TriggerInverted) String() string { return label(TriggerInvertedSemantic, uint32(v)) }

type StrobeSource uint8

const (
	StrobeSourceDirect StrobeSource = 0
	StrobeSourcePullUp StrobeSource = 1
)

var StrobeSourceSemantic = &Semantic{
	Name: "StrobeSource",
	Kind: KindEnum,
	Members: []Member{
		{"Direct", uint32(StrobeSourceDirect)},
		{"PullUp", uint32(StrobeSourcePullUp)},
	},
}

func (v StrobeSource) String() string { return label(StrobeSourceSemantic, uint32(v)) }

// OutputConfiguration selects what drives a digital output
type OutputConfiguration uint8

const (
	OutputSoftware      OutputConfiguration = 0
	OutputTriggerCamera OutputConfiguration = 1
	OutputStrobeCamera  OutputConfiguration = 2
)

var OutputConfigurationSemantic = &Semantic{
	Name: "OutputConfiguration",
	Kind: KindEnum,
	Members: []Member{
		{"Software", uint32(OutputSoftware)},
		{"TriggerCamera", uint32(OutputTriggerCamera)},
		{"StrobeCamera", uint32(OutputStrobeCamera)},
	},
}

func (v OutputConfiguration) String() string { return label(OutputConfigurationSemantic, uint32(v)) }

type DigitalOutputs uint8

const (
	DO0 DigitalOutputs = 0x01
	DO1 DigitalOutputs = 0x02
)

var DigitalOutputsSemantic = &Semantic{
	Name: "DigitalOutputs",
	Kind: KindFlags,
	Members: []Member{
		{"DO0", uint32(DO0)},
		{"DO1", uint32(DO1)},
	},
}

func (v DigitalOutputs) String() string { return label(DigitalOutputsSemantic, uint32(v)) }

type DigitalInputs uint8

const (
	DI0 DigitalInputs = 0x01
)

var DigitalInputsSemantic = &Semantic{
	Name: "DigitalInputs",
	Kind: KindFlags,
	Members: []Member{
		{"DI0", uint32(DI0)},
	},
}

func (v DigitalInputs) String() string { return label(DigitalInputsSemantic, uint32(v)) }
