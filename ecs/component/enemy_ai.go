package component

import "github.com/milk9111/watchtower/combat"

type GroundedAI struct {
	Brain combat.GroundedBrain
}

var GroundedAIComponent = NewComponent[GroundedAI]()

type PropellingAI struct {
	Brain combat.PropellingBrain
}

var PropellingAIComponent = NewComponent[PropellingAI]()
